package outbound

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// EmbedAll runs every builder registered for the document's kind and
// embeds the produced payloads into the given PDF as file attachments.
// All applicable formats embed; there is no content negotiation. A
// document kind with no builders returns the PDF unchanged.
func (s *Service) EmbedAll(ctx context.Context, doc *domain.Document, pdf []byte) ([]byte, error) {
	builders := s.registry.BuildersFor(doc.Kind)
	if len(builders) == 0 {
		return pdf, nil
	}

	// pdfcpu attaches files by path, so the payloads go through a
	// scratch directory scoped to this call.
	dir, err := os.MkdirTemp("", "ediflow-embed-*")
	if err != nil {
		return nil, fmt.Errorf("embed scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var files []string
	for _, b := range builders {
		filename, data, err := b.Fn(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", b.Name, err)
		}
		path := filepath.Join(dir, filepath.Base(filename))
		if err := os.WriteFile(path, data, 0o600); err != nil {
			return nil, fmt.Errorf("write payload %s: %w", filename, err)
		}
		files = append(files, path)
	}

	var out bytes.Buffer
	conf := model.NewDefaultConfiguration()
	if err := api.AddAttachments(bytes.NewReader(pdf), &out, files, false, conf); err != nil {
		return nil, fmt.Errorf("embed attachments: %w", err)
	}

	s.log.InfoContext(ctx, "payloads embedded",
		slog.String("document_id", doc.ID.String()),
		slog.Int("formats", len(files)),
	)
	return out.Bytes(), nil
}
