package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hr-assistant/internal/config"
	"hr-assistant/internal/corpus"
	"hr-assistant/internal/model"
	mysqlClient "hr-assistant/internal/platform/mysql"
	rabbitmqClient "hr-assistant/internal/platform/rabbitmq"
	redisClient "hr-assistant/internal/platform/redis"
	"hr-assistant/internal/repository"
	"hr-assistant/internal/session"
	"hr-assistant/internal/store"
	"hr-assistant/internal/worker"
)

// App wires configuration, data stores and the optional archive
// infrastructure. MySQL, Redis and RabbitMQ are each optional; when one is
// disabled or unreachable the service runs without it.
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Employees *store.EmployeeStore
	Leaves    *store.LeaveStore
	Corpus    *corpus.Corpus
	Sessions  *session.Store

	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	ArchiveWorker *worker.MessageArchiveWorker

	StartedAt time.Time
}

func New(ctx context.Context, logger *zap.Logger) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	employees, err := store.NewEmployeeStore(cfg.Data.EmployeeCSVPath)
	if err != nil {
		return nil, err
	}
	leaves, err := store.NewLeaveStore(cfg.Data.AnnualLeavePath, employees.All(), cfg.Data.DefaultLeaveDays)
	if err != nil {
		return nil, err
	}
	knowledge := corpus.New(cfg.Data.ChunkCachePath, cfg.Data.RegulationPDFDir, employees.All(), logger)

	app := &App{
		Config:    cfg,
		Logger:    logger,
		Employees: employees,
		Leaves:    leaves,
		Corpus:    knowledge,
		Sessions:  session.NewStore(),
		StartedAt: time.Now(),
	}

	if cfg.MySQL.Enabled {
		mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			logger.Warn("mysql unavailable, conversation archive disabled", zap.Error(err))
		} else if err := mysqlDB.AutoMigrate(&model.ChatMessage{}); err != nil {
			logger.Warn("mysql migrate failed, conversation archive disabled", zap.Error(err))
		} else {
			app.MySQL = mysqlDB
		}
	}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis unavailable, history cache disabled", zap.Error(err))
		} else {
			app.Redis = redisCli
		}
	}

	if cfg.RabbitMQ.Enabled && app.MySQL != nil {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			logger.Warn("rabbitmq unavailable, archive publishing disabled", zap.Error(err))
		} else {
			app.MQConn = mqConn
			messageRepo := repository.NewMessageRepository(app.MySQL)
			archiveWorker := worker.NewMessageArchiveWorker(mqConn, messageRepo, cfg.RabbitMQ.ArchiveQueue, logger)
			if err := archiveWorker.Start(ctx); err != nil {
				logger.Warn("start archive worker failed", zap.Error(err))
			} else {
				app.ArchiveWorker = archiveWorker
			}
		}
	}

	return app, nil
}

// Reload rereads the employee CSV and rebuilds the knowledge corpus. The
// leave store is untouched; the service is its sole writer.
func (a *App) Reload() error {
	if err := a.Employees.Reload(); err != nil {
		return fmt.Errorf("reload employees failed: %w", err)
	}
	a.Corpus.Rebuild(a.Employees.All())
	a.Logger.Info("data reloaded",
		zap.Int("employees", a.Employees.Count()),
		zap.Int("chunks", a.Corpus.Count()))
	return nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ArchiveWorker != nil {
		a.ArchiveWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
