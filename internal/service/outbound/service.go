// Package outbound implements the reverse half of the EDI pipeline:
// serialize a document through the builder registered for its format,
// embed every applicable payload into the rendered PDF and serve
// portal downloads.
package outbound

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
)

// Service produces outbound byte streams. Builders are pure functions,
// so the service keeps no state beyond the registry.
type Service struct {
	registry *registry.Registry
	log      *slog.Logger
}

// NewService creates a new Outbound service.
func NewService(log *slog.Logger, reg *registry.Registry) *Service {
	return &Service{
		registry: reg,
		log:      log.With("service", "outbound"),
	}
}

// Build serializes the document through the builder registered for
// (tag, kind). Returns ErrNotFound when no such builder exists.
func (s *Service) Build(ctx context.Context, doc *domain.Document, tag domain.FormatTag) (string, []byte, error) {
	b, ok := s.registry.LookupBuilder(tag, doc.Kind)
	if !ok {
		return "", nil, fmt.Errorf("builder %s/%s: %w", tag, doc.Kind, domain.ErrNotFound)
	}
	filename, data, err := b.Fn(ctx, doc)
	if err != nil {
		return "", nil, fmt.Errorf("build %s: %w", b.Name, err)
	}
	return filename, data, nil
}

// PortalBuilder selects the builder the public portal route may use.
// The portal serves a single canonical format: when zero or more than
// one builder is registered for the document's kind, the route answers
// not found.
func (s *Service) PortalBuilder(kind domain.DocumentKind) (registry.Builder, error) {
	builders := s.registry.BuildersFor(kind)
	if len(builders) != 1 {
		return registry.Builder{}, fmt.Errorf("portal builder for %s: %d registered: %w",
			kind, len(builders), domain.ErrNotFound)
	}
	return builders[0], nil
}

// BuildPortal serializes the document through the portal builder.
func (s *Service) BuildPortal(ctx context.Context, doc *domain.Document) (string, []byte, error) {
	b, err := s.PortalBuilder(doc.Kind)
	if err != nil {
		return "", nil, err
	}
	filename, data, err := b.Fn(ctx, doc)
	if err != nil {
		return "", nil, fmt.Errorf("build %s: %w", b.Name, err)
	}
	return filename, data, nil
}
