// Package facturae binds the Spanish Factura-E e-invoicing format.
// One envelope may carry several Invoice elements; such containers are
// split into sibling attachments.
package facturae

import (
	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
)

// Tag is the format tag this binding registers under.
const Tag = domain.FormatTagFacturae

// Priority of the Factura-E classifier.
const Priority = 20

// The two namespace generations in circulation.
var namespaces = map[string]bool{
	"http://www.facturae.es/Facturae/2009/v3.2/Facturae":   true,
	"http://www.facturae.es/Facturae/2014/v3.2.1/Facturae": true,
}

// Classify recognizes a Facturae root element in one of the accepted
// namespaces.
func Classify(in classify.Input) (domain.FormatTag, bool) {
	tree, ok := in.Tree()
	if !ok {
		return "", false
	}
	root := tree.Root()
	if root.Tag != "Facturae" || !namespaces[root.NamespaceURI()] {
		return "", false
	}
	return Tag, true
}

// Register wires the Factura-E binding into the classifier set and
// registry.
func Register(set *classify.Set, reg *registry.Registry) error {
	if err := set.Register("facturae", Priority, Classify); err != nil {
		return err
	}
	if err := reg.RegisterDecoder(Tag, domain.DocumentKindInvoice, registry.Decoder{Name: "Factura-E", Fn: Decode}); err != nil {
		return err
	}
	if err := reg.RegisterBuilder(Tag, domain.DocumentKindInvoice, registry.Builder{Name: "Factura-E", Fn: Build}); err != nil {
		return err
	}
	return reg.RegisterSplitter(Tag, Split)
}
