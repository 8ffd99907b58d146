package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Werneck0live/vincipitch-dashboard/internal/broker"
	"github.com/Werneck0live/vincipitch-dashboard/internal/config"
	"github.com/Werneck0live/vincipitch-dashboard/internal/db"
	"github.com/Werneck0live/vincipitch-dashboard/internal/handlers"
	"github.com/Werneck0live/vincipitch-dashboard/internal/models"
	"github.com/Werneck0live/vincipitch-dashboard/internal/notify"
	"github.com/Werneck0live/vincipitch-dashboard/internal/repository"
	"github.com/Werneck0live/vincipitch-dashboard/internal/utils"
	"github.com/Werneck0live/vincipitch-dashboard/internal/ws"
)

func main() {

	wscfg := config.LoadWSConfig()

	_ = config.InitLogger(wscfg.LogLevel)
	log := slog.Default().With("svc", "ws")

	// conecta Mongo: histórico de notificações
	client, err := db.NewMongoClient(wscfg.MongoURI)
	if err != nil {
		log.Error("mongo_connect_error", "err", err)
		os.Exit(1)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	repo := repository.NewNotificationRepository(client.Database(wscfg.MongoDB))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn("mongo_ensure_indexes_error", "err", err)
	}

	// a central começa com o que já estava persistido
	center := notify.NewCenter(wscfg.NotificationsMax)
	recent, err := repo.Recent(ctx, int64(wscfg.NotificationsMax))
	cancel()
	if err != nil {
		log.Warn("notifications_preload_error", "err", err)
	}
	for i := len(recent) - 1; i >= 0; i-- {
		center.Add(recent[i])
	}

	hub := ws.NewHub(log)
	hub.OnRegister = func(c *ws.Client) {
		items := center.List()
		if n := wscfg.ReplayOnConnect; n >= 0 && len(items) > n {
			items = items[:n]
		}
		if err := hub.SendHistory(c.ID, items); err != nil {
			log.Warn("ws_history_error", "id", c.ID, "err", err)
		}
	}
	go hub.Run()

	// Conecta no Rabbit e começa a consumir
	consumer := broker.NewConsumer(broker.ConsumerConfig{
		URI:      wscfg.RabbitURI,
		Exchange: wscfg.RabbitExchange,
		Queue:    wscfg.RabbitQueue,
		Prefetch: wscfg.ConsumerPrefetch,
		Tag:      "ws-consumer",
	}, log)

	listener := notify.NewListener(consumer, center, nil, log)
	// encaminha as notificações do Rabbit para o Mongo e para o hub
	listener.Forward = func(n models.Notificacao) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.Insert(ctx, n); err != nil {
			log.Error("notification_persist_error", "id", n.ID, "err", err)
		}
		if err := hub.Notify(n); err != nil {
			log.Error("ws_notify_error", "id", n.ID, "err", err)
		}
	}
	if err := listener.Start(context.Background()); err != nil {
		log.Error("rabbit_consumer_start_error", "err", err)
		os.Exit(1)
	}

	// HTTP: /ws, /healthz e histórico
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", ws.Handler(hub, log))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": hub.Clients()})
	})
	mux.HandleFunc("GET /notificacoes", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]any{
			"items":     center.List(),
			"nao_lidas": center.Unread(),
		})
	})
	mux.HandleFunc("POST /notificacoes/{id}/lida", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if !center.MarkRead(id) {
			utils.WriteNotice(w, http.StatusNotFound, utils.Notice{Titulo: "Notificação não encontrada"})
			return
		}
		if err := repo.MarkRead(r.Context(), id); err != nil && !errors.Is(err, repository.ErrNotFound) {
			log.Error("notification_mark_read_error", "id", id, "err", err)
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /notificacoes/lidas", func(w http.ResponseWriter, r *http.Request) {
		n := center.MarkAllRead()
		if _, err := repo.MarkAllRead(r.Context()); err != nil {
			log.Error("notification_mark_all_read_error", "err", err)
		}
		utils.WriteJSON(w, http.StatusOK, map[string]int{"marcadas": n})
	})

	srv := &http.Server{
		Addr:              wscfg.Addr,
		Handler:           handlers.LogRequests(log, mux),
		ReadHeaderTimeout: wscfg.ReadHeaderTimeout,
	}

	// O servidor é inicializado e começa a escutar na porta configurada
	go func() {
		log.Info("ws_listen", "addr", wscfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_error", "err", err)
			os.Exit(1)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	if err := listener.Stop(); err != nil {
		log.Warn("rabbit_consumer_stop_error", "err", err)
	}
	sctx, scancel := context.WithTimeout(context.Background(), wscfg.ShutdownTimeout)
	defer scancel()
	_ = srv.Shutdown(sctx)
	hub.Stop()

	log.Info("stopped")
}
