package components

import (
	"context"

	"examgate/internal/pkg/clock"
	"examgate/internal/pkg/config"
	"examgate/internal/queue"
	"examgate/internal/usecase/shared"
	"examgate/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewSweeper,
		NewCloser,
	),
	fx.Invoke(
		startSweeper,
		startCloser,
	),
)

func NewSweeper(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config) *worker.Sweeper {
	return worker.NewSweeper(uow, clk, cfg.Sweeper.Interval)
}

func NewCloser(cfg config.Config, uow shared.UnitOfWork, rdb *redis.Client, clk clock.Clock) *queue.Closer {
	return queue.NewCloser(cfg.AMQP.URL, uow, queue.NewRedisDedup(rdb), clk)
}

func startSweeper(lc fx.Lifecycle, s *worker.Sweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: s.Stop,
	})
}

func startCloser(lc fx.Lifecycle, c *queue.Closer) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			c.Start()
			return nil
		},
		OnStop: c.Stop,
	})
}
