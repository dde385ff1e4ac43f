package xmlutil

import (
	"testing"

	"github.com/beevik/etree"
)

func parse(t *testing.T, s string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(s); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc.Root()
}

func TestFind_IgnoresNamespacePrefix(t *testing.T) {
	t.Parallel()

	root := parse(t, `<inv:Invoice xmlns:inv="urn:x" xmlns:cbc="urn:y">
		<cbc:ID>F-001</cbc:ID>
		<inv:Party><cbc:Name>ACME</cbc:Name></inv:Party>
	</inv:Invoice>`)

	if got := Text(root, "ID"); got != "F-001" {
		t.Errorf("ID: got %q", got)
	}
	if got := Text(root, "Party", "Name"); got != "ACME" {
		t.Errorf("Party/Name: got %q", got)
	}
	if Find(root, "Party", "Missing") != nil {
		t.Error("missing path must return nil")
	}
}

func TestChildren(t *testing.T) {
	t.Parallel()

	root := parse(t, `<a><b>1</b><c/><b>2</b></a>`)
	bs := Children(root, "b")
	if len(bs) != 2 {
		t.Fatalf("children: got %d, want 2", len(bs))
	}
	if bs[0].Text() != "1" || bs[1].Text() != "2" {
		t.Error("children order not preserved")
	}
}

func TestChild_NilReceiver(t *testing.T) {
	t.Parallel()

	if Child(nil, "x") != nil {
		t.Error("nil element must yield nil")
	}
	if Text(nil, "x") != "" {
		t.Error("nil element must yield empty text")
	}
}
