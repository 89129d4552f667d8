package components

import (
	"context"

	"examgate/internal/queue"
	"examgate/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var QueueModule = fx.Module("queue",
	fx.Provide(
		fx.Annotate(NewPublisher, fx.As(new(commands.EventPublisher))),
	),
)

func NewPublisher(lc fx.Lifecycle, conn *amqp.Connection) (*queue.Publisher, error) {
	p, err := queue.NewPublisher(conn)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}
