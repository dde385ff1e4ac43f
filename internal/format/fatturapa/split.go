package fatturapa

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Split breaks a multi-invoice transmission into one payload per
// FatturaElettronicaBody. Each payload is the full envelope (header
// included) with exactly one body, so every sibling remains a valid
// transmission. Single-body files return at most one payload, meaning
// no siblings.
func Split(tree *etree.Document) ([][]byte, error) {
	root := tree.Root()
	if root == nil || root.Tag != "FatturaElettronica" {
		return nil, nil
	}

	bodies := xmlutil.Children(root, "FatturaElettronicaBody")
	if len(bodies) <= 1 {
		return nil, nil
	}

	out := make([][]byte, 0, len(bodies))
	for i := range bodies {
		clone := tree.Copy()
		cloneRoot := clone.Root()

		keep := 0
		for _, child := range cloneRoot.ChildElements() {
			if child.Tag != "FatturaElettronicaBody" {
				continue
			}
			if keep != i {
				cloneRoot.RemoveChild(child)
			}
			keep++
		}

		data, err := clone.WriteToBytes()
		if err != nil {
			return nil, fmt.Errorf("serialize body %d: %w", i+1, err)
		}
		out = append(out, data)
	}

	return out, nil
}
