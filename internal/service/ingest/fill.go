package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
)

// fill applies one attachment to one draft document through the
// decoder registered for (tag, kind).
//
// The decoder runs inside a savepoint scoped to this single file. On
// decoder error the savepoint is rolled back, the document keeps its
// pre-call values, an error audit message is posted and the error is
// swallowed, unless it carries the redirect-to-user marker, which is
// returned to the caller to abort the batch.
func (s *Service) fill(ctx context.Context, doc *domain.Document, att *domain.Attachment, fd registry.FileData) error {
	if fd.OnClose != nil {
		defer fd.OnClose()
	}

	dec, ok := s.registry.LookupDecoder(att.FormatTag, doc.Kind)
	if !ok {
		s.postAudit(ctx, doc.ID, domain.MessageKindInfo,
			fmt.Sprintf("No importer is registered for format %s; file %q was kept as a plain attachment.", att.FormatTag, att.Filename),
			att.ID)
		return nil
	}

	// Snapshot so an in-memory half-decode never leaks past a rolled
	// back savepoint.
	snapshot := *doc
	snapshot.Lines = append([]domain.DocumentLine(nil), doc.Lines...)

	var notes []string
	err := s.tx.RunInSavepoint(ctx, func(ctx context.Context) error {
		res, err := dec.Fn(ctx, doc, fd)
		if err != nil {
			return err
		}
		if res != nil {
			notes = res.Notes
		}
		return s.documents.Save(ctx, doc)
	})
	if err != nil {
		*doc = snapshot
		s.postAudit(ctx, doc.ID, domain.MessageKindError,
			fmt.Sprintf("Error importing file %q with importer %s: %v", fd.Filename, dec.Name, err),
			att.ID)
		if domain.IsRedirectToUser(err) {
			return err
		}
		s.log.WarnContext(ctx, "decoder failed",
			slog.String("document_id", doc.ID.String()),
			slog.String("decoder", dec.Name),
			slog.String("filename", fd.Filename),
			slog.Any("error", err),
		)
		return nil
	}

	body := "Format used to import the document: " + dec.Name
	if len(notes) > 0 {
		body += "\n- " + strings.Join(notes, "\n- ")
	}
	s.postAudit(ctx, doc.ID, domain.MessageKindInfo, body, att.ID)

	if len(notes) > 0 {
		s.postAudit(ctx, doc.ID, domain.MessageKindActivity,
			"Some information could not be imported", att.ID)
	}
	return nil
}
