package outbound

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// RenderPDF renders a minimal one-page summary sheet for the document
// and embeds every applicable EDI payload into it.
func (s *Service) RenderPDF(ctx context.Context, doc *domain.Document) ([]byte, error) {
	lines := []string{
		fmt.Sprintf("%s %s", doc.Kind, doc.Reference),
		fmt.Sprintf("Partner: %s (%s)", doc.PartnerName, doc.PartnerVAT),
		fmt.Sprintf("State: %s", doc.State),
	}
	if doc.IssueDate != nil {
		lines = append(lines, fmt.Sprintf("Date: %s", doc.IssueDate.Format("2006-01-02")))
	}
	for _, l := range doc.Lines {
		lines = append(lines, fmt.Sprintf("%d. %s  %s x %s", l.Position, l.Description, l.Quantity, l.UnitPrice))
	}
	lines = append(lines, fmt.Sprintf("Total: %s %s", doc.Total(), doc.Currency))

	return s.EmbedAll(ctx, doc, sheetPDF(lines))
}

// sheetPDF writes a single-page PDF with the given text lines. pdfcpu
// is a processor, not a layout engine, so the page itself is emitted as
// raw PDF objects with a hand-maintained xref table.
func sheetPDF(lines []string) []byte {
	var content bytes.Buffer
	content.WriteString("BT\n/F1 11 Tf\n50 792 Td\n14 TL\n")
	for _, line := range lines {
		fmt.Fprintf(&content, "(%s) Tj\nT*\n", escapePDFText(line))
	}
	content.WriteString("ET\n")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// escapePDFText escapes the characters PDF string literals reserve.
// Non-ASCII runes are dropped: the sheet uses a standard Type1 font
// without an embedded encoding.
func escapePDFText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r >= 32 && r < 127:
			b.WriteRune(r)
		}
	}
	return b.String()
}
