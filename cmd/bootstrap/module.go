package bootstrap

import (
	"examgate/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	AMQPModule,
	JWTModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.QueueModule,
	components.WorkerModule,
	components.HandlerModule,
)
