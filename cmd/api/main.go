package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"Lee_Directory/internal/config"
	"Lee_Directory/internal/pkg"
	"Lee_Directory/internal/repository/mysql"
	"Lee_Directory/internal/repository/redis"
	"Lee_Directory/internal/router"
	"Lee_Directory/internal/service"
)

func setupLogger(cfg config.LogConfig) {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime})
	}
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

// buildSenders 日志总是开启，其余按配置启用；返回需要在退出时关闭的资源
func buildSenders(cfg *config.Config) (*service.Fanout, []func() error) {
	senders := []service.EventSender{service.LogSender{}}
	var closers []func() error

	if len(cfg.Events.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Events.Kafka.Brokers, Topic: cfg.Events.Kafka.Topic})
		senders = append(senders, &service.KafkaSender{Producer: producer})
		closers = append(closers, producer.Close)
		log.Info().Strs("brokers", cfg.Events.Kafka.Brokers).Str("topic", cfg.Events.Kafka.Topic).Msg("kafka events enabled")
	}

	if cfg.Events.RabbitMQ.URL != "" {
		client, err := pkg.NewRabbitmqClient(cfg.Events.RabbitMQ.URL)
		if err == nil {
			err = client.DeclareQueue(cfg.Events.RabbitMQ.Queue)
		}
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, events disabled")
		} else {
			senders = append(senders, &service.RabbitSender{Client: client, Queue: cfg.Events.RabbitMQ.Queue})
			closers = append(closers, client.Close)
			log.Info().Str("queue", cfg.Events.RabbitMQ.Queue).Msg("rabbitmq events enabled")
		}
	}

	if cfg.SMTP.Host != "" && cfg.SMTP.NotifyTo != "" {
		smtp := pkg.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}
		senders = append(senders, service.NewEmailSender(smtp, cfg.SMTP.NotifyTo, cfg.BaseURL))
		log.Info().Str("to", cfg.SMTP.NotifyTo).Msg("submission e-mail enabled")
	}

	return service.NewFanout(senders...), closers
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	setupLogger(cfg.Log)
	log.Info().Str("config", cfg.String()).Msg("config loaded")

	db, err := mysql.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// 自动建表
	if err := mysql.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, login throttling disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	events, closers := buildSenders(cfg)
	defer func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn().Err(err).Msg("close event sender")
			}
		}
	}()

	r, err := router.InitRouter(router.Deps{Config: cfg, DB: db, Redis: rdb, Events: events})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("directory server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited gracefully")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
