package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

type outboundService interface {
	BuildPortal(ctx context.Context, doc *domain.Document) (string, []byte, error)
	RenderPDF(ctx context.Context, doc *domain.Document) ([]byte, error)
}

type documentGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Document, error)
}

type portalTokenValidator interface {
	ValidatePortalToken(token string) (uuid.UUID, error)
}

// PortalHandler serves the public portal routes. Access is granted by
// a signed single-document token in the query string.
type PortalHandler struct {
	outbound  outboundService
	documents documentGetter
	tokens    portalTokenValidator
	log       *slog.Logger
}

// NewPortalHandler creates a PortalHandler.
func NewPortalHandler(outbound outboundService, documents documentGetter, tokens portalTokenValidator, logger *slog.Logger) *PortalHandler {
	return &PortalHandler{
		outbound:  outbound,
		documents: documents,
		tokens:    tokens,
		log:       logger.With("handler", "portal"),
	}
}

// authorize validates the token and checks it grants the requested
// document. Token failures answer 404: the portal does not reveal
// which ids exist.
func (h *PortalHandler) authorize(w http.ResponseWriter, r *http.Request) (*domain.Document, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return nil, false
	}
	grantedID, err := h.tokens.ValidatePortalToken(r.URL.Query().Get("token"))
	if err != nil || grantedID != id {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}

	doc, err := h.documents.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return nil, false
	}
	return doc, true
}

// Download handles GET /portal/documents/{id}/download. It streams the
// canonical EDI payload. Exactly one builder must be registered for the
// document's kind; zero or several answer 404.
func (h *PortalHandler) Download(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.authorize(w, r)
	if !ok {
		return
	}

	filename, data, err := h.outbound.BuildPortal(r.Context(), doc)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

// PDF handles GET /portal/documents/{id}/pdf. It renders the summary
// sheet with every applicable EDI payload embedded.
func (h *PortalHandler) PDF(w http.ResponseWriter, r *http.Request) {
	doc, ok := h.authorize(w, r)
	if !ok {
		return
	}

	data, err := h.outbound.RenderPDF(r.Context(), doc)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.ID.String()+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}
