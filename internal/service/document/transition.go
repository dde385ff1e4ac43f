package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Post transitions a draft document to POSTED. Transitions are
// linearized by the state guard in the repository, so two concurrent
// posts cannot both succeed.
func (s *Service) Post(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, id, func(doc *domain.Document) error { return doc.Post() })
}

// Cancel transitions a posted document to CANCELLED.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	return s.transition(ctx, id, func(doc *domain.Document) error { return doc.Cancel() })
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, apply func(*domain.Document) error) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}

	from := doc.State
	if err := apply(doc); err != nil {
		return nil, err
	}

	if err := s.documents.UpdateState(ctx, id, from, doc.State); err != nil {
		return nil, fmt.Errorf("update state %s: %w", id, err)
	}

	_, err = s.audit.Post(ctx, domain.AuditMessage{
		DocumentID: id,
		Author:     domain.SystemAuthor,
		Kind:       domain.MessageKindInfo,
		Body:       fmt.Sprintf("State changed: %s to %s", from, doc.State),
	})
	if err != nil {
		s.log.ErrorContext(ctx, "post transition audit",
			slog.String("document_id", id.String()),
			slog.Any("error", err),
		)
	}

	s.log.InfoContext(ctx, "document transitioned",
		slog.String("document_id", id.String()),
		slog.String("from", from.String()),
		slog.String("to", doc.State.String()),
	)
	return doc, nil
}
