// Package format wires every format binding into the classifier set
// and the decoder/builder registry. Called once at startup.
package format

import (
	"strings"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/format/facturae"
	"github.com/heartmarshall/ediflow-backend/internal/format/fatturapa"
	"github.com/heartmarshall/ediflow-backend/internal/format/ubl"
)

// Fallback classifier priorities. Below every format binding so a real
// format always wins.
const (
	priorityPDF      = 5
	priorityOtherXML = 1
	priorityBinary   = 0
)

// RegisterAll registers the format bindings and the generic fallback
// classifiers (other-xml, pdf, binary). These fallbacks have no
// decoders: files classified by them are kept on the record untouched.
func RegisterAll(set *classify.Set, reg *registry.Registry) error {
	if err := ubl.Register(set, reg); err != nil {
		return err
	}
	if err := facturae.Register(set, reg); err != nil {
		return err
	}
	if err := fatturapa.Register(set, reg); err != nil {
		return err
	}

	if err := set.Register("pdf", priorityPDF, classifyPDF); err != nil {
		return err
	}
	if err := set.Register("other-xml", priorityOtherXML, classifyOtherXML); err != nil {
		return err
	}
	return set.Register("binary", priorityBinary, classifyBinary)
}

func classifyPDF(in classify.Input) (domain.FormatTag, bool) {
	if strings.HasPrefix(strings.ToLower(in.Mime), "application/pdf") {
		return domain.FormatTagPDF, true
	}
	return "", false
}

// classifyOtherXML accepts any parseable XML whose namespace no other
// binding claimed. It only wins when every format classifier rejected
// the file.
func classifyOtherXML(in classify.Input) (domain.FormatTag, bool) {
	if _, ok := in.Tree(); !ok {
		return "", false
	}
	return domain.FormatTagOtherXML, true
}

func classifyBinary(in classify.Input) (domain.FormatTag, bool) {
	if strings.EqualFold(in.Mime, "application/octet-stream") {
		return domain.FormatTagBinary, true
	}
	return "", false
}
