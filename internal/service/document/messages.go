package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Messages returns the document's audit trail, oldest first.
func (s *Service) Messages(ctx context.Context, id uuid.UUID) ([]domain.AuditMessage, error) {
	if _, err := s.documents.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}

	msgs, err := s.audit.ListByDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list messages %s: %w", id, err)
	}
	return msgs, nil
}
