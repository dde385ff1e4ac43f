// Package document exposes read and lifecycle operations on ingested
// business documents: listing, state transitions and the audit trail.
package document

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.Document, int, error)
	UpdateState(ctx context.Context, id uuid.UUID, from, to domain.DocumentState) error
}

type auditRepo interface {
	Post(ctx context.Context, msg domain.AuditMessage) (domain.AuditMessage, error)
	ListByDocument(ctx context.Context, docID uuid.UUID) ([]domain.AuditMessage, error)
}

// Service provides document management operations.
type Service struct {
	documents documentRepo
	audit     auditRepo
	log       *slog.Logger
}

// NewService creates a new Document service.
func NewService(log *slog.Logger, documents documentRepo, audit auditRepo) *Service {
	return &Service{
		documents: documents,
		audit:     audit,
		log:       log.With("service", "document"),
	}
}
