package facturae

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Split breaks a multi-invoice envelope into one payload per Invoice
// element under Invoices. Each payload keeps the full envelope (file
// header, parties) with exactly one invoice, so every sibling remains a
// valid Factura-E document. Single-invoice envelopes return no payloads.
func Split(tree *etree.Document) ([][]byte, error) {
	root := tree.Root()
	if root == nil || root.Tag != "Facturae" {
		return nil, nil
	}

	invoices := xmlutil.Children(xmlutil.Child(root, "Invoices"), "Invoice")
	if len(invoices) <= 1 {
		return nil, nil
	}

	out := make([][]byte, 0, len(invoices))
	for i := range invoices {
		clone := tree.Copy()
		container := xmlutil.Child(clone.Root(), "Invoices")

		keep := 0
		for _, child := range container.ChildElements() {
			if child.Tag != "Invoice" {
				continue
			}
			if keep != i {
				container.RemoveChild(child)
			}
			keep++
		}

		data, err := clone.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize invoice %d: %w", i+1, err)
		}
		out = append(out, data)
	}

	return out, nil
}
