package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Werneck0live/vincipitch-dashboard/internal/admin"
	"github.com/Werneck0live/vincipitch-dashboard/internal/apiclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/broker"
	"github.com/Werneck0live/vincipitch-dashboard/internal/config"
	"github.com/Werneck0live/vincipitch-dashboard/internal/handlers"
	"github.com/Werneck0live/vincipitch-dashboard/internal/httpclient"
	"github.com/Werneck0live/vincipitch-dashboard/internal/notify"
	"github.com/Werneck0live/vincipitch-dashboard/internal/session"
)

type eventBus interface {
	handlers.Publisher
	io.Closer
}

// cmd/api/main.go
func main() {
	cfg := config.Load() // .env / config.yaml

	// Logger JSON "global" - permite usar slog.Info/slog.Error/Warn em qualquer lugar
	log := config.InitLogger(cfg.LogLevel)
	log.Info("starting", "port", cfg.Port, "api_base_url", cfg.APIBaseURL)

	api := apiclient.New(cfg.APIBaseURL, httpclient.New(cfg.APITimeout), log)
	log.Debug("api_client_ready", "base_url", api.BaseURL(), "timeout", cfg.APITimeout.String())

	// HOOK: admin job (one-off)
	task := flag.String("task", "", "admin task: seed")
	flag.Parse()
	if *task != "" {
		switch *task {
		case "seed":
			rep, err := admin.SeedEmpresas(context.Background(), api, log)
			if err != nil {
				log.Error("seed_failed", "err", err)
				os.Exit(1)
			}
			log.Info("seed_done", "criadas", rep.Criadas, "existentes", rep.Existentes, "invalidas", rep.Invalidas)
			return // encerra o processo sem subir HTTP
		default:
			log.Error("unknown_admin_task", "task", *task)
			os.Exit(2)
		}
	}

	bus, sub, err := newEventBus(cfg, log)
	if err != nil {
		log.Error("rabbitmq_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = bus.Close() }()

	sess := session.New(api, bus, session.ConfigFrom(cfg.Polling, cfg.NotificationsMax), log)
	if err := sess.Listen(sub, api); err != nil {
		log.Error("session_listen_error", "err", err)
		os.Exit(1)
	}

	h := handlers.New(api, sess, bus, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.LogRequests(log, h.Routes()),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	// start server
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful_shutdown_error", "err", err)
	}
	if err := sess.Close(); err != nil {
		log.Warn("session_close_error", "err", err)
	}
	log.Info("stopped")
}

// newEventBus escolhe o transporte de eventos: RabbitMQ quando configurado,
// senão os eventos circulam só dentro do processo.
func newEventBus(cfg *config.Config, log *slog.Logger) (eventBus, notify.Subscriber, error) {
	if cfg.RabbitURI == "" {
		log.Warn("rabbitmq_disabled", "reason", "RABBITMQ_URL vazio")
		lb := notify.NewLoopback()
		return lb, lb, nil
	}
	pub, err := broker.NewPublisher(cfg.RabbitURI, cfg.RabbitExchange)
	if err != nil {
		return nil, nil, err
	}
	sub := broker.NewConsumer(broker.ConsumerConfig{
		URI:      cfg.RabbitURI,
		Exchange: cfg.RabbitExchange,
		Tag:      "api-session",
	}, log)
	return pub, sub, nil
}
