package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
	docsvc "github.com/heartmarshall/ediflow-backend/internal/service/document"
)

type documentService interface {
	List(ctx context.Context, input docsvc.ListInput) (*docsvc.ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Post(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	Messages(ctx context.Context, id uuid.UUID) ([]domain.AuditMessage, error)
}

// DocumentsHandler serves the documents REST endpoints.
type DocumentsHandler struct {
	svc documentService
	log *slog.Logger
}

// NewDocumentsHandler creates a DocumentsHandler.
func NewDocumentsHandler(svc documentService, logger *slog.Logger) *DocumentsHandler {
	return &DocumentsHandler{svc: svc, log: logger.With("handler", "documents")}
}

type documentResponse struct {
	ID          string                 `json:"id"`
	Kind        string                 `json:"kind"`
	State       string                 `json:"state"`
	PartnerName string                 `json:"partnerName,omitempty"`
	PartnerVAT  string                 `json:"partnerVat,omitempty"`
	Currency    string                 `json:"currency,omitempty"`
	Reference   string                 `json:"reference,omitempty"`
	IssueDate   *string                `json:"issueDate,omitempty"`
	Total       string                 `json:"total"`
	Lines       []documentLineResponse `json:"lines,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

type documentLineResponse struct {
	Position    int    `json:"position"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	TaxRate     string `json:"taxRate"`
}

type listResponse struct {
	Documents []documentResponse `json:"documents"`
	Total     int                `json:"total"`
}

type messageResponse struct {
	ID            string    `json:"id"`
	Author        string    `json:"author"`
	Kind          string    `json:"kind"`
	Body          string    `json:"body"`
	AttachmentIDs []string  `json:"attachmentIds,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toDocumentResponse(doc *domain.Document) documentResponse {
	resp := documentResponse{
		ID:          doc.ID.String(),
		Kind:        doc.Kind.String(),
		State:       doc.State.String(),
		PartnerName: doc.PartnerName,
		PartnerVAT:  doc.PartnerVAT,
		Currency:    doc.Currency,
		Reference:   doc.Reference,
		Total:       doc.Total().String(),
		CreatedAt:   doc.CreatedAt,
	}
	if doc.IssueDate != nil {
		d := doc.IssueDate.Format("2006-01-02")
		resp.IssueDate = &d
	}
	for _, l := range doc.Lines {
		resp.Lines = append(resp.Lines, documentLineResponse{
			Position:    l.Position,
			Description: l.Description,
			Quantity:    l.Quantity.String(),
			UnitPrice:   l.UnitPrice.String(),
			TaxRate:     l.TaxRate.String(),
		})
	}
	return resp
}

// List handles GET /api/documents.
func (h *DocumentsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	input := docsvc.ListInput{}
	if v := q.Get("kind"); v != "" {
		kind := domain.DocumentKind(v)
		input.Kind = &kind
	}
	if v := q.Get("state"); v != "" {
		state := domain.DocumentState(v)
		input.State = &state
	}
	if v := q.Get("search"); v != "" {
		input.Search = &v
	}
	input.Limit, _ = strconv.Atoi(q.Get("limit"))
	input.Offset, _ = strconv.Atoi(q.Get("offset"))

	res, err := h.svc.List(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := listResponse{Documents: make([]documentResponse, 0, len(res.Documents)), Total: res.Total}
	for _, doc := range res.Documents {
		resp.Documents = append(resp.Documents, toDocumentResponse(doc))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/documents/{id}.
func (h *DocumentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	doc, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Post handles POST /api/documents/{id}/post.
func (h *DocumentsHandler) Post(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Post)
}

// Cancel handles POST /api/documents/{id}/cancel.
func (h *DocumentsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.svc.Cancel)
}

func (h *DocumentsHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (*domain.Document, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	doc, err := op(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDocumentResponse(doc))
}

// Messages handles GET /api/documents/{id}/messages.
func (h *DocumentsHandler) Messages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	msgs, err := h.svc.Messages(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		mr := messageResponse{
			ID:        m.ID.String(),
			Author:    m.Author,
			Kind:      m.Kind.String(),
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		}
		for _, attID := range m.AttachmentIDs {
			mr.AttachmentIDs = append(mr.AttachmentIDs, attID.String())
		}
		out = append(out, mr)
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": out})
}

// pathID parses the {id} URL parameter, answering 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return uuid.Nil, false
	}
	return id, true
}
