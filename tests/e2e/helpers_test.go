//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/ediflow-backend/internal/adapter/postgres"
	attachmentrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/attachment"
	auditrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/audit"
	documentrepo "github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/document"
	"github.com/heartmarshall/ediflow-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/ediflow-backend/internal/auth"
	"github.com/heartmarshall/ediflow-backend/internal/config"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/edi/xmltree"
	"github.com/heartmarshall/ediflow-backend/internal/format"
	docsvc "github.com/heartmarshall/ediflow-backend/internal/service/document"
	"github.com/heartmarshall/ediflow-backend/internal/service/ingest"
	"github.com/heartmarshall/ediflow-backend/internal/service/outbound"
	"github.com/heartmarshall/ediflow-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Tokens *auth.TokenManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	attachments := attachmentrepo.New(pool)
	documents := documentrepo.New(pool)
	audit := auditrepo.New(pool)

	set := classify.NewSet()
	reg := registry.New()
	require.NoError(t, format.RegisterAll(set, reg))
	loader := xmltree.NewLoader(logger)

	ingestSvc := ingest.NewService(logger, attachments, documents, audit, txm, set, reg, loader)
	outboundSvc := outbound.NewService(logger, reg)
	documentSvc := docsvc.NewService(logger, documents, audit)

	tokens := auth.NewTokenManager("test-secret-at-least-32-chars-long!!", "test-issuer", time.Hour)

	ingestCfg := config.IngestConfig{MaxAttachmentSize: 10 << 20, MaxBatchSize: 100}

	router := rest.NewRouter(rest.RouterDeps{
		Ingest:    rest.NewIngestHandler(ingestSvc, attachments, ingestCfg, logger),
		Documents: rest.NewDocumentsHandler(documentSvc, logger),
		Portal:    rest.NewPortalHandler(outboundSvc, documentSvc, tokens, logger),
		Health:    rest.NewHealthHandler(pool, "e2e-test"),

		PartnerTokens: tokens,
		CORS:          config.CORSConfig{AllowedOrigins: "*"},
		Log:           logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Tokens: tokens,
	}
}

// uploadFiles posts a multipart ingest request and returns the decoded
// response body.
func (ts *testServer) uploadFiles(t *testing.T, kind string, files map[string][]byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	if kind != "" {
		require.NoError(t, mw.WriteField("kind", kind))
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/ingest", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp.Body)
}

func (ts *testServer) getJSON(t *testing.T, path string) (int, map[string]any) {
	t.Helper()

	resp, err := ts.Client.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, decodeBody(t, resp.Body)
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)
	return body
}
