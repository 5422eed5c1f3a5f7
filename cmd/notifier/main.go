package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/api/handlers/notification"
	"github.com/DannylSyph3r/notification-system/internal/api/router"
	"github.com/DannylSyph3r/notification-system/internal/api/server"
	"github.com/DannylSyph3r/notification-system/internal/config"
	"github.com/DannylSyph3r/notification-system/internal/enrichment"
	"github.com/DannylSyph3r/notification-system/internal/idempotency"
	"github.com/DannylSyph3r/notification-system/internal/kvstore"
	"github.com/DannylSyph3r/notification-system/internal/ledger"
	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/provider"
	profilemsg "github.com/DannylSyph3r/notification-system/internal/rabbitmq/handlers/profile"
	"github.com/DannylSyph3r/notification-system/internal/rabbitmq/queue"
	"github.com/DannylSyph3r/notification-system/internal/service/admission"
	"github.com/DannylSyph3r/notification-system/internal/userprofile"
	"github.com/DannylSyph3r/notification-system/internal/worker"
	"github.com/DannylSyph3r/notification-system/pkg/email"
	"github.com/DannylSyph3r/notification-system/pkg/push"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	pubCh, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open publish channel")
	}

	consCh, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open consume channel")
	}

	topology, err := queue.Declare(pubCh, cfg.RabbitMQ)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to declare broker topology")
	}

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store := kvstore.New(rdb.Client, cfg.Retry)
	statusLedger := ledger.New(store, cfg.TTL.Status)
	idempIndex := idempotency.New(store, cfg.TTL.Idempotency)

	profiles := userprofile.NewClient(cfg.UserService.URL)
	enrichCache := enrichment.New(store, profiles, cfg.TTL.Enrichment)

	publisher := queue.NewPublisher(pubCh, topology, cfg.RabbitMQ, cfg.Retry)
	admissionSvc := admission.NewService(idempIndex, statusLedger, enrichCache, publisher)

	emailClient := email.NewClient(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.Username,
		cfg.Email.Password,
		cfg.Email.From,
	)
	pushClient := push.NewClient(cfg.Push.GatewayURL, cfg.Push.APIKey)

	providers := map[string]provider.Sender{
		model.TypeEmail: provider.NewBreaker(emailClient, "email",
			cfg.Breaker.FailureThreshold, cfg.Breaker.SuccessThreshold, cfg.Breaker.RecoveryTimeout),
		model.TypePush: provider.NewBreaker(pushClient, "push",
			cfg.Breaker.FailureThreshold, cfg.Breaker.SuccessThreshold, cfg.Breaker.RecoveryTimeout),
	}

	for _, queueName := range []string{topology.EmailQueue, topology.PushQueue} {
		consumer := queue.NewConsumer(consCh, queueName, cfg.RabbitMQ.Prefetch)
		w := worker.New(consumer, statusLedger, publisher, providers, cfg.Delivery)

		go func(name string) {
			if err := w.Run(ctx, cfg.Workers.Count); err != nil {
				zlog.Logger.Error().Err(err).Str("queue", name).Msg("delivery worker exited")
			}
		}(queueName)
	}

	profileConsumer := queue.NewConsumer(consCh, topology.ProfileQueue, cfg.RabbitMQ.Prefetch)
	profileHandler := profilemsg.NewHandler(profileConsumer, enrichCache)

	go func() {
		if err := profileHandler.Run(ctx); err != nil {
			zlog.Logger.Error().Err(err).Msg("profile event handler exited")
		}
	}()

	notifHandler := notification.NewHandler(admissionSvc, val)
	r := router.New(notifHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := consCh.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close consume channel")
	}

	if err := pubCh.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close publish channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
