package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/config"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

type ingestService interface {
	Ingest(ctx context.Context, attachmentIDs []uuid.UUID, kind domain.DocumentKind) ([]*domain.Document, error)
}

type attachmentStore interface {
	Create(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error)
}

// IngestHandler serves the inbound upload endpoint.
type IngestHandler struct {
	svc         ingestService
	attachments attachmentStore
	cfg         config.IngestConfig
	log         *slog.Logger
}

// NewIngestHandler creates an IngestHandler.
func NewIngestHandler(svc ingestService, attachments attachmentStore, cfg config.IngestConfig, logger *slog.Logger) *IngestHandler {
	return &IngestHandler{
		svc:         svc,
		attachments: attachments,
		cfg:         cfg,
		log:         logger.With("handler", "ingest"),
	}
}

type ingestResponse struct {
	Documents []documentResponse `json:"documents"`
}

// Ingest handles POST /api/ingest. The request is a multipart form
// whose "files" parts become attachments; the optional "kind" field
// selects the target document kind (default invoice).
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	kind := domain.DocumentKindInvoice
	if v := r.FormValue("kind"); v != "" {
		kind = domain.DocumentKind(v)
		if !kind.IsValid() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown document kind %q", v))
			return
		}
	}

	if err := r.ParseMultipartForm(h.cfg.MaxAttachmentSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request")
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}
	if len(files) > h.cfg.MaxBatchSize {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("too many files: %d (max %d)", len(files), h.cfg.MaxBatchSize))
		return
	}

	var ids []uuid.UUID
	for _, fh := range files {
		att, err := h.storeUpload(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), fh)
		if err != nil {
			handleError(w, r, h.log, err)
			return
		}
		ids = append(ids, att.ID)
	}

	docs, err := h.svc.Ingest(r.Context(), ids, kind)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := ingestResponse{Documents: make([]documentResponse, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, toDocumentResponse(doc))
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *IngestHandler) storeUpload(ctx context.Context, filename, declaredMime string, fh *multipart.FileHeader) (*domain.Attachment, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", domain.ErrLoaderAborted, filename, err)
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, h.cfg.MaxAttachmentSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", domain.ErrLoaderAborted, filename, err)
	}
	if int64(len(raw)) > h.cfg.MaxAttachmentSize {
		return nil, domain.NewValidationError("files", fmt.Sprintf("%q exceeds the size limit", filename))
	}

	return h.attachments.Create(ctx, &domain.Attachment{
		Filename: filepath.Base(filename),
		MimeType: uploadMime(declaredMime, filename, raw),
		Raw:      raw,
	})
}

// uploadMime prefers the declared content type, then the filename
// extension, then content sniffing.
func uploadMime(declared, filename string, raw []byte) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return http.DetectContentType(raw)
}
