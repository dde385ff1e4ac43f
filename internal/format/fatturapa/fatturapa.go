// Package fatturapa binds the Italian FatturaPA e-invoicing format.
// Containers carry one FatturaElettronicaBody per invoice and are split
// into sibling attachments; signed transmissions (.xml.p7m) reach this
// binding through the tree loader's signature stripping.
package fatturapa

import (
	"regexp"
	"strings"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
)

// Tag is the format tag this binding registers under.
const Tag = domain.FormatTagFatturaPA

// Priority of the FatturaPA classifier. Higher than the XML-content
// classifiers: the transmission filename is authoritative.
const Priority = 30

// Transmission filenames look like IT01234567890_FPA01.xml(.p7m):
// country code, transmitter id, underscore, progressive code.
var filenameRe = regexp.MustCompile(`^[A-Z]{2}[A-Za-z0-9]{2,28}_[A-Za-z0-9]{0,5}\.(xml|xml\.p7m)$`)

// Classify recognizes FatturaPA transmissions by filename and MIME type.
func Classify(in classify.Input) (domain.FormatTag, bool) {
	if !filenameRe.MatchString(in.Filename) {
		return "", false
	}
	if !xmlOrPKCS7(in.Mime) {
		return "", false
	}
	return Tag, true
}

func xmlOrPKCS7(mime string) bool {
	mime = strings.ToLower(mime)
	return strings.Contains(mime, "xml") || strings.Contains(mime, "pkcs7")
}

// Register wires the FatturaPA binding into the classifier set and
// registry.
func Register(set *classify.Set, reg *registry.Registry) error {
	if err := set.Register("fatturapa", Priority, Classify); err != nil {
		return err
	}
	if err := reg.RegisterDecoder(Tag, domain.DocumentKindInvoice, registry.Decoder{Name: "FatturaPA", Fn: Decode}); err != nil {
		return err
	}
	if err := reg.RegisterBuilder(Tag, domain.DocumentKindInvoice, registry.Builder{Name: "FatturaPA", Fn: Build}); err != nil {
		return err
	}
	return reg.RegisterSplitter(Tag, Split)
}
