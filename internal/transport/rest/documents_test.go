package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	docsvc "github.com/heartmarshall/ediflow-backend/internal/service/document"
)

type documentServiceMock struct {
	list     func(ctx context.Context, input docsvc.ListInput) (*docsvc.ListResult, error)
	get      func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	post     func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	cancel   func(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	messages func(ctx context.Context, id uuid.UUID) ([]domain.AuditMessage, error)
}

func (m *documentServiceMock) List(ctx context.Context, input docsvc.ListInput) (*docsvc.ListResult, error) {
	return m.list(ctx, input)
}

func (m *documentServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return m.get(ctx, id)
}

func (m *documentServiceMock) Post(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return m.post(ctx, id)
}

func (m *documentServiceMock) Cancel(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return m.cancel(ctx, id)
}

func (m *documentServiceMock) Messages(ctx context.Context, id uuid.UUID) ([]domain.AuditMessage, error) {
	return m.messages(ctx, id)
}

func documentsRouter(h *DocumentsHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/documents", h.List)
	r.Get("/api/documents/{id}", h.Get)
	r.Post("/api/documents/{id}/post", h.Post)
	r.Post("/api/documents/{id}/cancel", h.Cancel)
	r.Get("/api/documents/{id}/messages", h.Messages)
	return r
}

func sampleDocument() *domain.Document {
	issued := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	return &domain.Document{
		ID:          uuid.New(),
		Kind:        domain.DocumentKindInvoice,
		State:       domain.DocumentStatePosted,
		Reference:   "INV-2026-001",
		PartnerName: "ACME GmbH",
		IssueDate:   &issued,
		Lines: []domain.DocumentLine{
			{Description: "Widget", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	}
}

func TestDocumentsList_ParsesQuery(t *testing.T) {
	t.Parallel()

	var gotInput docsvc.ListInput
	svc := &documentServiceMock{
		list: func(ctx context.Context, input docsvc.ListInput) (*docsvc.ListResult, error) {
			gotInput = input
			return &docsvc.ListResult{Documents: []*domain.Document{sampleDocument()}, Total: 1}, nil
		},
	}
	h := NewDocumentsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/documents?kind=INVOICE&state=POSTED&search=acme&limit=5&offset=10", nil)
	rec := httptest.NewRecorder()
	documentsRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body)
	}
	if gotInput.Kind == nil || *gotInput.Kind != domain.DocumentKindInvoice {
		t.Errorf("kind: got %v", gotInput.Kind)
	}
	if gotInput.State == nil || *gotInput.State != domain.DocumentStatePosted {
		t.Errorf("state: got %v", gotInput.State)
	}
	if gotInput.Search == nil || *gotInput.Search != "acme" {
		t.Errorf("search: got %v", gotInput.Search)
	}
	if gotInput.Limit != 5 || gotInput.Offset != 10 {
		t.Errorf("paging: got limit=%d offset=%d", gotInput.Limit, gotInput.Offset)
	}

	var resp listResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Total != 1 || len(resp.Documents) != 1 {
		t.Errorf("response: total=%d documents=%d", resp.Total, len(resp.Documents))
	}
}

func TestDocumentsGet(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	svc := &documentServiceMock{
		get: func(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
			if id != doc.ID {
				return nil, domain.ErrNotFound
			}
			return doc, nil
		},
	}
	h := NewDocumentsHandler(svc, slog.Default())
	router := documentsRouter(h)

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+doc.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d", rec.Code)
		}
		var resp documentResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Reference != "INV-2026-001" {
			t.Errorf("reference: %q", resp.Reference)
		}
		if resp.Total != "20" {
			t.Errorf("total: got %q, want 20", resp.Total)
		}
		if resp.IssueDate == nil || *resp.IssueDate != "2026-08-15" {
			t.Errorf("issue date: %v", resp.IssueDate)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodGet, "/api/documents/not-a-uuid", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestDocumentsTransitions(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	svc := &documentServiceMock{
		post: func(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
			return doc, nil
		},
		cancel: func(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
			return nil, fmt.Errorf("cannot cancel a DRAFT document: %w", domain.ErrConflict)
		},
	}
	h := NewDocumentsHandler(svc, slog.Default())
	router := documentsRouter(h)

	t.Run("post succeeds", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+doc.ID.String()+"/post", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d", rec.Code)
		}
	})

	t.Run("invalid transition answers 409", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+doc.ID.String()+"/cancel", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusConflict {
			t.Errorf("status: got %d, want 409", rec.Code)
		}
	})
}

func TestDocumentsMessages(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	svc := &documentServiceMock{
		messages: func(ctx context.Context, id uuid.UUID) ([]domain.AuditMessage, error) {
			return []domain.AuditMessage{
				{ID: uuid.New(), DocumentID: id, Kind: domain.MessageKindInfo, Body: "Format used to import the document: UBL 2.1"},
			}, nil
		},
	}
	h := NewDocumentsHandler(svc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/api/documents/"+doc.ID.String()+"/messages", nil)
	rec := httptest.NewRecorder()
	documentsRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	var resp []messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || resp[0].Body == "" {
		t.Errorf("messages: %+v", resp)
	}
}
