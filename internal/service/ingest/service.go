// Package ingest implements the inbound half of the EDI pipeline:
// classify uploaded attachments, unwrap multi-document containers and
// decode each file into a freshly created draft document, with per-file
// failure isolation.
package ingest

import (
	"context"
	"log/slog"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/edi/xmltree"
)

type attachmentRepo interface {
	Create(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Attachment, error)
	Link(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, docID uuid.UUID) error
	SetClassification(ctx context.Context, id uuid.UUID, tag domain.FormatTag, priority int) error
}

type documentRepo interface {
	Create(ctx context.Context, doc *domain.Document) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

type auditRepo interface {
	Post(ctx context.Context, msg domain.AuditMessage) (domain.AuditMessage, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSavepoint(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service drives the ingestion pipeline. The classifier set and the
// decoder registry are populated at startup and read-only afterwards.
type Service struct {
	attachments attachmentRepo
	documents   documentRepo
	audit       auditRepo
	tx          txManager

	set      *classify.Set
	registry *registry.Registry
	loader   *xmltree.Loader

	log *slog.Logger
}

// NewService creates a new Ingest service.
func NewService(
	log *slog.Logger,
	attachments attachmentRepo,
	documents documentRepo,
	audit auditRepo,
	tx txManager,
	set *classify.Set,
	reg *registry.Registry,
	loader *xmltree.Loader,
) *Service {
	return &Service{
		attachments: attachments,
		documents:   documents,
		audit:       audit,
		tx:          tx,
		set:         set,
		registry:    reg,
		loader:      loader,
		log:         log.With("service", "ingest"),
	}
}

func (s *Service) classifyInput(att *domain.Attachment) classify.Input {
	return classify.Input{
		Filename: att.Filename,
		Mime:     att.MimeType,
		Raw:      att.Raw,
		Tree: func() (*etree.Document, bool) {
			return s.loader.Load(att)
		},
	}
}

func (s *Service) fileData(att *domain.Attachment) registry.FileData {
	fd := registry.FileData{
		Filename: att.Filename,
		Raw:      att.Raw,
	}
	if tree, ok := s.loader.Load(att); ok {
		fd.Tree = tree
	}
	return fd
}

func (s *Service) postAudit(ctx context.Context, docID uuid.UUID, kind domain.MessageKind, body string, attIDs ...uuid.UUID) {
	_, err := s.audit.Post(ctx, domain.AuditMessage{
		DocumentID:    docID,
		Author:        domain.SystemAuthor,
		Kind:          kind,
		Body:          body,
		AttachmentIDs: attIDs,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "post audit message",
			slog.String("document_id", docID.String()),
			slog.Any("error", err),
		)
	}
}
