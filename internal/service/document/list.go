package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// List returns documents matching the filter, newest first, plus the
// total count ignoring pagination.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	docs, total, err := s.documents.List(ctx, domain.DocumentFilter{
		Kind:   input.Kind,
		State:  input.State,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return &ListResult{Documents: docs, Total: total}, nil
}

// Get returns one document with its lines.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return doc, nil
}
