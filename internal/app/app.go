package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/ediflow-backend/internal/adapter/postgres"
	attachmentrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/attachment"
	auditrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/audit"
	documentrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/document"
	"github.com/heartmarshall/ediflow-backend/internal/auth"
	"github.com/heartmarshall/ediflow-backend/internal/config"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/edi/xmltree"
	"github.com/heartmarshall/ediflow-backend/internal/format"
	docsvc "github.com/heartmarshall/ediflow-backend/internal/service/document"
	"github.com/heartmarshall/ediflow-backend/internal/service/ingest"
	"github.com/heartmarshall/ediflow-backend/internal/service/outbound"
	"github.com/heartmarshall/ediflow-backend/internal/transport/middleware"
	"github.com/heartmarshall/ediflow-backend/internal/transport/rest"
)

const tokenIssuer = "ediflow"

// Run wires the whole application together and serves HTTP until the
// context is canceled or a termination signal arrives.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	attachments := attachmentrepo.New(pool)
	documents := documentrepo.New(pool)
	audit := auditrepo.New(pool)

	// Format stack: classifiers, splitters, decoders, builders.
	set := classify.NewSet()
	reg := registry.New()
	if err := format.RegisterAll(set, reg); err != nil {
		return fmt.Errorf("register formats: %w", err)
	}
	loader := xmltree.NewLoader(logger)

	ingestSvc := ingest.NewService(logger, attachments, documents, audit, txManager, set, reg, loader)
	outboundSvc := outbound.NewService(logger, reg)
	documentSvc := docsvc.NewService(logger, documents, audit)

	tokens := auth.NewTokenManager(cfg.Portal.TokenSecret, tokenIssuer, cfg.Portal.TokenTTL)

	var limiter *middleware.RateLimiter
	if cfg.Portal.RatePerMinute > 0 {
		limiter = middleware.NewRateLimiter(time.Minute)
	}

	router := rest.NewRouter(rest.RouterDeps{
		Ingest:    rest.NewIngestHandler(ingestSvc, attachments, cfg.Ingest, logger),
		Documents: rest.NewDocumentsHandler(documentSvc, logger),
		Portal:    rest.NewPortalHandler(outboundSvc, documentSvc, tokens, logger),
		Health:    rest.NewHealthHandler(pool, BuildVersion()),

		PartnerTokens: tokens,
		RateLimiter:   limiter,
		PortalPerMin:  cfg.Portal.RatePerMinute,
		CORS:          cfg.CORS,
		Log:           logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
