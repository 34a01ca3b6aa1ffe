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

	"github.com/marcelsud/whatsapp-bridge-api/config"
	"github.com/marcelsud/whatsapp-bridge-api/internal/http/chi"
	"github.com/marcelsud/whatsapp-bridge-api/metrics"
	"github.com/marcelsud/whatsapp-bridge-api/webhook"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp/bridge"
	"github.com/marcelsud/whatsapp-bridge-api/whatsapp/sqlite"
	"github.com/rs/zerolog"
)

const TIMEOUT = 30 * time.Second

/* “a porta de entrada e saída da minha aplicação”
* É no arquivo main.go onde é feita toda a “amarração” dos demais pacotes:
* o banco de mensagens da bridge, o cliente REST da bridge, o relay de webhooks e as métricas.
 */

/*
 * As importações devem ser feitas apenas em uma direção: para baixo. O aplicativo (api, cli) importa camadas de negócios,
 * que importam a camada de armazenamento
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", "whatsapp-bridge-api").Logger()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	if cfg.WebhookAPIKey == "" {
		logger.Warn().Msg("WEBHOOK_API_KEY not set, only /health and the docs will answer")
	}

	store, err := sqlite.Open(ctx, cfg.MessagesDBPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.MessagesDBPath).Msg("opening messages database")
		return
	}
	defer store.Close()

	client := bridge.NewClient(cfg.BridgeAPIURL, nil, bridge.NewFFmpeg(cfg.FFmpegPath), logger)
	whatsappService := whatsapp.NewService(store, client)

	// O executor vive até o fim do processo; o contexto de sinais só encerra o servidor
	executor := webhook.NewExecutor(context.Background(), cfg.GetDispatchWorkers(), cfg.GetDispatchQueueSize(), logger)
	dispatcher := webhook.NewDispatcher(webhook.NewDispatcherConfig(cfg), nil, executor, logger)
	webhookService := webhook.NewService(dispatcher, webhook.NewBuffer(webhook.DefaultBufferCapacity), executor)

	exporter, err := metrics.NewOTelExporter(metrics.NewRelayCollector(webhookService))
	if err != nil {
		logger.Error().Err(err).Msg("creating metrics exporter")
		return
	}

	r := chi.Handlers(ctx, chi.Options{
		APIKey:   cfg.WebhookAPIKey,
		LogLevel: cfg.LogLevel,
		Metrics:  exporter.ServeHTTP(),
	}, whatsappService, webhookService)
	// Sem WriteTimeout: um trigger síncrono pode esperar o timeout_seconds pedido pelo cliente.
	// As demais rotas são limitadas por chi.RequestTimeout.
	srv := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		Addr:              ":" + cfg.Port,
		Handler:           r,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	logger.Info().Str("port", cfg.Port).Str("bridge", cfg.BridgeAPIURL).Msg("listening")
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("serving")
		return
	}
	err = <-errShutdown
	if err != nil {
		logger.Error().Err(err).Msg("shutting down")
	}

	// Tarefas em fila ainda são entregues antes de sair
	executor.Close()
	ctxTimeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	if err := exporter.Shutdown(ctxTimeout); err != nil {
		logger.Error().Err(err).Msg("shutting down metrics exporter")
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
