// Package ubl binds the UBL BIS 3 (Peppol) format: classification,
// decoding into invoices and orders, and building canonical outbound
// XML.
package ubl

import (
	"strings"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/classify"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Tag is the format tag this binding registers under.
const Tag = domain.FormatTagUBLBIS3

// Priority of the UBL classifier.
const Priority = 20

const (
	invoiceNamespace = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	orderNamespace   = "urn:oasis:names:specification:ubl:schema:xsd:Order-2"
	cbcNamespace     = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	cacNamespace     = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"

	invoiceCustomizationID = "urn:fdc:peppol.eu:poacc:trns:billing:3"
	orderCustomizationID   = "urn:fdc:peppol.eu:poacc:trns:order:3"
)

// Classify recognizes a root element in a UBL namespace carrying a
// Peppol customization id.
func Classify(in classify.Input) (domain.FormatTag, bool) {
	tree, ok := in.Tree()
	if !ok {
		return "", false
	}
	root := tree.Root()
	if !strings.Contains(root.NamespaceURI(), "oasis:names:specification:ubl") {
		return "", false
	}
	cid := xmlutil.Text(root, "CustomizationID")
	if !strings.Contains(cid, "poacc") {
		return "", false
	}
	return Tag, true
}

// Register wires the UBL binding into the classifier set and registry.
// UBL documents never carry more than one business document, so no
// splitter is registered.
func Register(set *classify.Set, reg *registry.Registry) error {
	if err := set.Register("ubl-bis3", Priority, Classify); err != nil {
		return err
	}

	for _, kind := range []domain.DocumentKind{
		domain.DocumentKindInvoice,
		domain.DocumentKindPurchaseOrder,
		domain.DocumentKindSaleOrder,
	} {
		if err := reg.RegisterDecoder(Tag, kind, registry.Decoder{Name: "UBL BIS 3", Fn: Decode}); err != nil {
			return err
		}
		if err := reg.RegisterBuilder(Tag, kind, registry.Builder{Name: "UBL BIS 3", Fn: Build}); err != nil {
			return err
		}
	}
	return nil
}
