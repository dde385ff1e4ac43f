package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// unwrap splits a multi-document container into sibling attachments,
// one per enclosed document, keeping the original first. Formats
// without a registered splitter, non-XML files and single-document
// containers come back as a one-element slice.
//
// Siblings carry the container's format tag unchanged: classification
// happens once, on the original.
func (s *Service) unwrap(ctx context.Context, att *domain.Attachment) ([]*domain.Attachment, error) {
	self := []*domain.Attachment{att}

	split, ok := s.registry.LookupSplitter(att.FormatTag)
	if !ok {
		return self, nil
	}
	tree, ok := s.loader.Load(att)
	if !ok {
		return self, nil
	}

	parts, err := split(tree)
	if err != nil {
		// A broken container still yields the original document.
		s.log.WarnContext(ctx, "container split failed",
			slog.String("attachment_id", att.ID.String()),
			slog.String("format", att.FormatTag.String()),
			slog.Any("error", err),
		)
		return self, nil
	}
	if len(parts) <= 1 {
		return self, nil
	}

	out := self
	for k := 2; k <= len(parts); k++ {
		sib, err := s.attachments.Create(ctx, &domain.Attachment{
			Filename:         domain.SiblingFilename(att.Filename, k),
			MimeType:         att.MimeType,
			Raw:              parts[k-1],
			FormatTag:        att.FormatTag,
			Priority:         att.Priority,
			RootAttachmentID: &att.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("create sibling %d of %q: %w", k, att.Filename, err)
		}
		out = append(out, sib)
	}

	s.log.InfoContext(ctx, "container unwrapped",
		slog.String("attachment_id", att.ID.String()),
		slog.String("format", att.FormatTag.String()),
		slog.Int("documents", len(parts)),
	)
	return out, nil
}
