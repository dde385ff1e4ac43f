package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heartmarshall/ediflow-backend/internal/config"
	"github.com/heartmarshall/ediflow-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the HTTP surface needs.
type RouterDeps struct {
	Ingest    *IngestHandler
	Documents *DocumentsHandler
	Portal    *PortalHandler
	Health    *HealthHandler

	PartnerTokens middleware.TokenValidator
	RateLimiter   *middleware.RateLimiter
	PortalPerMin  int
	CORS          config.CORSConfig
	Log           *slog.Logger
}

// NewRouter assembles the chi router with the standard middleware
// chain: request id, logging, panic recovery, CORS.
func NewRouter(deps RouterDeps) http.Handler {
	base := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(deps.Log),
		middleware.Recovery(deps.Log),
		middleware.CORS(deps.CORS),
	)

	r := chi.NewRouter()
	r.Use(base)

	r.Get("/health", deps.Health.Health)
	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.PartnerAuth(deps.PartnerTokens))

		r.Post("/ingest", deps.Ingest.Ingest)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", deps.Documents.List)
			r.Get("/{id}", deps.Documents.Get)
			r.Post("/{id}/post", deps.Documents.Post)
			r.Post("/{id}/cancel", deps.Documents.Cancel)
			r.Get("/{id}/messages", deps.Documents.Messages)
		})
	})

	r.Route("/portal/documents/{id}", func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Limit(deps.PortalPerMin))
		}
		r.Get("/download", deps.Portal.Download)
		r.Get("/pdf", deps.Portal.PDF)
	})

	return r
}
