package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/edi/xmltree"
)

//go:generate moq -out attachment_repo_mock_test.go -pkg ingest . attachmentRepo
//go:generate moq -out document_repo_mock_test.go -pkg ingest . documentRepo
//go:generate moq -out audit_repo_mock_test.go -pkg ingest . auditRepo
//go:generate moq -out tx_manager_mock_test.go -pkg ingest . txManager

// testTag is a synthetic format used by the tests below so they do not
// depend on any real format binding.
const testTag = domain.FormatTag("test-xml")

// testStack bundles a Service wired to mocks plus the mocks themselves.
type testStack struct {
	svc         *Service
	attachments *attachmentRepoMock
	documents   *documentRepoMock
	audit       *auditRepoMock
	tx          *txManagerMock

	set *classify.Set
	reg *registry.Registry
}

// newTestStack builds a Service whose repos are pass-through mocks and
// whose transaction manager runs callbacks inline.
func newTestStack(t *testing.T) *testStack {
	t.Helper()

	st := &testStack{
		attachments: &attachmentRepoMock{},
		documents:   &documentRepoMock{},
		audit:       &auditRepoMock{},
		tx:          &txManagerMock{},
		set:         classify.NewSet(),
		reg:         registry.New(),
	}

	st.attachments.CreateFunc = func(ctx context.Context, att *domain.Attachment) (*domain.Attachment, error) {
		out := *att
		out.ID = uuid.New()
		out.CreatedAt = time.Now().UTC()
		return &out, nil
	}
	st.attachments.LinkFunc = func(ctx context.Context, id uuid.UUID, kind domain.DocumentKind, docID uuid.UUID) error {
		return nil
	}
	st.attachments.SetClassificationFunc = func(ctx context.Context, id uuid.UUID, tag domain.FormatTag, priority int) error {
		return nil
	}
	st.documents.CreateFunc = func(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
		out := *doc
		out.ID = uuid.New()
		return &out, nil
	}
	st.documents.SaveFunc = func(ctx context.Context, doc *domain.Document) error {
		return nil
	}
	st.audit.PostFunc = func(ctx context.Context, msg domain.AuditMessage) (domain.AuditMessage, error) {
		return msg, nil
	}
	st.tx.RunInTxFunc = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}
	st.tx.RunInSavepointFunc = func(ctx context.Context, fn func(ctx context.Context) error) error {
		return fn(ctx)
	}

	st.svc = NewService(
		slog.Default(),
		st.attachments,
		st.documents,
		st.audit,
		st.tx,
		st.set,
		st.reg,
		xmltree.NewLoader(slog.Default()),
	)
	return st
}

// registerTestFormat registers a classifier matching <TestDoc> roots, a
// splitter for <TestBatch> containers and the given decoder for the
// invoice kind.
func (st *testStack) registerTestFormat(t *testing.T, dec registry.DecodeFunc) {
	t.Helper()

	err := st.set.Register(string(testTag), 10, func(in classify.Input) (domain.FormatTag, bool) {
		tree, ok := in.Tree()
		if !ok {
			return "", false
		}
		switch tree.Root().Tag {
		case "TestDoc", "TestBatch":
			return testTag, true
		}
		return "", false
	})
	if err != nil {
		t.Fatalf("register classifier: %v", err)
	}

	err = st.reg.RegisterSplitter(testTag, func(tree *etree.Document) ([][]byte, error) {
		root := tree.Root()
		if root.Tag != "TestBatch" {
			return nil, nil
		}
		var parts [][]byte
		for _, child := range root.ChildElements() {
			sub := etree.NewDocument()
			sub.SetRoot(child.Copy())
			raw, err := sub.WriteToBytes()
			if err != nil {
				return nil, err
			}
			parts = append(parts, raw)
		}
		return parts, nil
	})
	if err != nil {
		t.Fatalf("register splitter: %v", err)
	}

	if dec != nil {
		err = st.reg.RegisterDecoder(testTag, domain.DocumentKindInvoice, registry.Decoder{
			Name: "Test XML",
			Fn:   dec,
		})
		if err != nil {
			t.Fatalf("register decoder: %v", err)
		}
	}
}

// refDecoder copies <Ref> into the document reference.
func refDecoder(ctx context.Context, doc *domain.Document, fd registry.FileData) (*registry.DecodeResult, error) {
	if fd.Tree == nil {
		return nil, fmt.Errorf("no tree for %s", fd.Filename)
	}
	doc.ResetLines()
	if ref := fd.Tree.Root().SelectElement("Ref"); ref != nil {
		doc.Reference = ref.Text()
	}
	return &registry.DecodeResult{}, nil
}

func testXML(ref string) []byte {
	return []byte(fmt.Sprintf("<TestDoc><Ref>%s</Ref></TestDoc>", ref))
}

func testAttachment(filename string, raw []byte) *domain.Attachment {
	return &domain.Attachment{
		ID:       uuid.New(),
		Filename: filename,
		MimeType: "application/xml",
		Raw:      raw,
	}
}

// stubGetByIDs serves the given attachments regardless of requested ids.
func (st *testStack) stubGetByIDs(atts ...*domain.Attachment) []uuid.UUID {
	ids := make([]uuid.UUID, len(atts))
	for i, att := range atts {
		ids[i] = att.ID
	}
	st.attachments.GetByIDsFunc = func(ctx context.Context, _ []uuid.UUID) ([]*domain.Attachment, error) {
		return atts, nil
	}
	return ids
}

// auditBodies collects the bodies of every posted audit message.
func (st *testStack) auditBodies() []string {
	var bodies []string
	for _, call := range st.audit.PostCalls() {
		bodies = append(bodies, call.Msg.Body)
	}
	return bodies
}
