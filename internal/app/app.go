package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/kubishi-relay/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/kubishi-relay/internal/adapter/llm/gemini"
	"github.com/heartmarshall/kubishi-relay/internal/adapter/provider/kubishi"
	"github.com/heartmarshall/kubishi-relay/internal/adapter/whatsapp"
	"github.com/heartmarshall/kubishi-relay/internal/config"
	"github.com/heartmarshall/kubishi-relay/internal/domain"
	"github.com/heartmarshall/kubishi-relay/internal/service/conversation"
	"github.com/heartmarshall/kubishi-relay/internal/service/orchestrator"
	"github.com/heartmarshall/kubishi-relay/internal/transport/middleware"
	"github.com/heartmarshall/kubishi-relay/internal/transport/rest"
)

// modelClient is implemented by every model adapter.
type modelClient interface {
	Generate(ctx context.Context, req domain.ModelRequest) (*domain.RawReply, error)
}

// Run is the application entry point. It loads configuration, wires the
// components and serves HTTP until ctx is cancelled, then drains in-flight
// messages.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("model_provider", cfg.Model.Provider),
	)

	// 1. External clients.
	dict := kubishi.NewClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, logger)

	model, err := newModelClient(ctx, cfg.Model, logger)
	if err != nil {
		return err
	}

	sender := whatsapp.NewClient(whatsapp.Config{
		AccessToken: cfg.WhatsApp.AccessToken,
		BaseURL:     cfg.WhatsApp.GraphBaseURL,
		APIVersion:  cfg.WhatsApp.APIVersion,
		Timeout:     cfg.WhatsApp.Timeout,
	}, logger)

	// 2. Services.
	orch := orchestrator.NewService(logger, model, dict, nil)
	conv := conversation.NewService(logger, orch, cfg.Conversation)

	// 3. Handlers.
	webhook := rest.NewWebhookHandler(logger, conv, sender, cfg.WhatsApp.VerifyToken, cfg.Conversation.ProcessTimeout)
	health := rest.NewHealthHandler(logger, BuildVersion(), rest.Check{Name: "dictionary", Pinger: dict})

	// 4. Middleware chain.
	handler := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)(rest.NewRouter(webhook, health))

	// 5. HTTP server.
	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, webhook, cfg.Server, logger)
}

// newModelClient builds the adapter selected by cfg.Provider.
func newModelClient(ctx context.Context, cfg config.ModelConfig, logger *slog.Logger) (modelClient, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("app: model client: %w", err)
		}
		return c, nil
	case config.ProviderAnthropic:
		c, err := anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.AnthropicAPIKey,
			Model:     cfg.AnthropicModel,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("app: model client: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("app: unknown model provider %q", cfg.Provider)
	}
}

// serve runs srv until ctx is done, then shuts it down and waits for
// background message processing to finish.
func serve(ctx context.Context, srv *http.Server, webhook *rest.WebhookHandler, cfg config.ServerConfig, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	drained := make(chan struct{})
	go func() {
		webhook.Wait()
		close(drained)
	}()

	select {
	case <-drained:
		logger.Info("in-flight messages drained")
	case <-shutdownCtx.Done():
		logger.Warn("shutdown timeout reached with messages still in flight")
	}

	return nil
}
