package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/pkg/ctxutil"
)

// Ingest creates one draft document of the given kind per attachment,
// classifies and decodes each file, and returns the created documents
// in creation order. Multi-document containers produce extra documents,
// one per enclosed document, filled in document order.
//
// Each attachment runs inside its own transaction, with the decoder in
// a savepoint inside it, so one failing file never aborts its siblings.
// Only decoder errors carrying the redirect-to-user marker abort the
// batch, at that attachment; documents filled by earlier attachments
// stay committed and are returned together with the error.
func (s *Service) Ingest(ctx context.Context, attachmentIDs []uuid.UUID, kind domain.DocumentKind) ([]*domain.Document, error) {
	if !kind.IsValid() {
		return nil, domain.NewValidationError("kind", "unknown document kind")
	}
	if len(attachmentIDs) == 0 {
		return nil, domain.ErrNoAttachments
	}

	atts, err := s.attachments.GetByIDs(ctx, attachmentIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve attachments: %w", err)
	}
	if len(atts) == 0 {
		return nil, domain.ErrNoAttachments
	}

	partner, _ := ctxutil.PartnerFromCtx(ctx)

	var docs []*domain.Document
	for _, att := range atts {
		var created []*domain.Document
		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			created, err = s.processAttachment(ctx, att, kind, partner)
			return err
		})
		if err != nil {
			return docs, err
		}
		docs = append(docs, created...)
	}

	s.log.InfoContext(ctx, "batch ingested",
		slog.String("kind", kind.String()),
		slog.Int("attachments", len(attachmentIDs)),
		slog.Int("documents", len(docs)),
	)
	return docs, nil
}

// processAttachment runs steps (a)-(e) for one uploaded attachment:
// create a draft, link, classify, unwrap, fill. Returns every document
// it created, container siblings included.
func (s *Service) processAttachment(ctx context.Context, att *domain.Attachment, kind domain.DocumentKind, partner ctxutil.Partner) ([]*domain.Document, error) {
	doc, err := s.createDraft(ctx, att, kind, partner)
	if err != nil {
		return nil, err
	}
	docs := []*domain.Document{doc}

	res, ok := s.set.Classify(s.classifyInput(att))
	if !ok {
		s.postAudit(ctx, doc.ID, domain.MessageKindWarning,
			fmt.Sprintf("File %q was not recognized as a supported format and was kept as a plain attachment.", att.Filename),
			att.ID)
		return docs, nil
	}
	if err := s.attachments.SetClassification(ctx, att.ID, res.Tag, res.Priority); err != nil {
		return nil, fmt.Errorf("classify attachment %s: %w", att.ID, err)
	}
	att.FormatTag = res.Tag
	att.Priority = res.Priority

	siblings, err := s.unwrap(ctx, att)
	if err != nil {
		return nil, err
	}

	// First element is the original, applied to the document created
	// above; every sibling gets a fresh draft of the same kind.
	pairs := []fillPair{{doc: doc, att: att}}
	for _, sib := range siblings[1:] {
		sibDoc, err := s.createDraft(ctx, sib, kind, partner)
		if err != nil {
			return nil, err
		}
		docs = append(docs, sibDoc)
		pairs = append(pairs, fillPair{doc: sibDoc, att: sib})
	}

	for _, p := range pairs {
		if err := s.fill(ctx, p.doc, p.att, s.fileData(p.att)); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

type fillPair struct {
	doc *domain.Document
	att *domain.Attachment
}

func (s *Service) createDraft(ctx context.Context, att *domain.Attachment, kind domain.DocumentKind, partner ctxutil.Partner) (*domain.Document, error) {
	doc, err := s.documents.Create(ctx, &domain.Document{
		Kind:        kind,
		State:       domain.DocumentStateDraft,
		PartnerName: partner.Name,
		PartnerVAT:  partner.VAT,
	})
	if err != nil {
		return nil, fmt.Errorf("create draft for %q: %w", att.Filename, err)
	}
	if err := s.attachments.Link(ctx, att.ID, kind, doc.ID); err != nil {
		return nil, fmt.Errorf("link attachment %s: %w", att.ID, err)
	}
	att.ResModel = kind
	att.ResID = &doc.ID
	return doc, nil
}
