package main

import (
	"fmt"
	"log/slog"

	"Lee_Blog/internal/config"
	"Lee_Blog/internal/event"
	"Lee_Blog/internal/pkg"
	"Lee_Blog/internal/repository"
	badgerstore "Lee_Blog/internal/repository/badger"
	"Lee_Blog/internal/repository/file"
	"Lee_Blog/internal/repository/mysql"
	redisstore "Lee_Blog/internal/repository/redis"
)

// openStore 按 storage.driver 选后端
func openStore(cfg config.Storage, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverFile:
		return file.Open(cfg.Dir)
	case config.DriverBadger:
		return badgerstore.Open(badgerstore.Config{
			Path:       cfg.Badger.Path,
			InMemory:   cfg.Badger.InMemory,
			SyncWrites: cfg.Badger.SyncWrites,
			Logger:     logger,
		})
	case config.DriverRedis:
		rdb, err := redisstore.NewClient(redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(rdb, cfg.Redis.Prefix), nil
	case config.DriverMySQL:
		db, err := mysql.InitDB(cfg.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		return &mysql.Store{DB: db}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// buildPublisher 日志总是开着；kafka / 邮件按配置启用
func buildPublisher(cfg *config.Config, logger *slog.Logger) (event.Publisher, func(), error) {
	pubs := event.Multi{event.LogPublisher{Logger: logger.With("component", "events")}}
	closeFn := func() {}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		if err != nil {
			return nil, nil, fmt.Errorf("kafka producer: %w", err)
		}
		pubs = append(pubs, event.NewKafkaPublisher(producer))
		closeFn = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("close kafka producer", "error", err)
			}
		}
	}

	if cfg.Mail.Host != "" {
		mailer, err := pkg.NewMailer(pkg.SMTPConfig{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.From,
		})
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		pubs = append(pubs, event.NewMailPublisher(mailer, cfg.Mail.Moderator))
	}
	return pubs, closeFn, nil
}
