package cmd

import (
	"fmt"
	"log/slog"

	"bakery/internal/adapters/out/memory"
	"bakery/internal/adapters/out/notify"
	"bakery/internal/adapters/out/postgres"
	"bakery/internal/adapters/out/postgres/migrations"
	"bakery/internal/adapters/out/rabbitmq"
	"bakery/internal/core/ports"

	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenStorage returns the unit of work factory of the configured backend
// together with a function releasing its resources. The PostgreSQL schema is
// migrated before the factory is handed out.
func OpenStorage(cfg Config) (ports.UnitOfWorkFactory, func() error, error) {
	switch cfg.StorageBackend {
	case StorageMemory:
		return memory.NewUnitOfWorkFactory(memory.NewStore()), func() error { return nil }, nil
	case StoragePostgres:
		dsn := cfg.DSN()
		if err := migrations.Up(dsn); err != nil {
			return nil, nil, err
		}

		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get database handle: %w", err)
		}
		return postgres.NewGormUnitOfWorkFactory(db), sqlDB.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// OpenNotifier logs every notification and, when RabbitMQ is configured,
// also publishes it to the events exchange.
func OpenNotifier(cfg Config, logger *slog.Logger) (ports.Notifier, func(), error) {
	logNotifier := notify.NewLogNotifier(logger)
	if cfg.RabbitMQURL == "" {
		return logNotifier, func() {}, nil
	}

	client, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	if err != nil {
		return nil, nil, err
	}
	return notify.Fanout{logNotifier, rabbitmq.NewNotifier(client, cfg.RabbitMQExchange)}, client.Close, nil
}
