package fatturapa

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

const namespace = "http://ivaservizi.agenziaentrate.gov.it/docs/xsd/fatture/v1.2"

// Build serializes an invoice as a single-body FatturaPA transmission.
// The output is accepted by Decode, so decode(build(d)) reproduces d
// over the fields the format defines.
func Build(ctx context.Context, doc *domain.Document) (string, []byte, error) {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := tree.CreateElement("p:FatturaElettronica")
	root.CreateAttr("xmlns:p", namespace)
	root.CreateAttr("versione", "FPR12")

	header := root.CreateElement("FatturaElettronicaHeader")
	anag := header.CreateElement("CedentePrestatore").CreateElement("DatiAnagrafici")
	if doc.PartnerVAT != "" {
		fiscal := anag.CreateElement("IdFiscaleIVA")
		country, code := splitVAT(doc.PartnerVAT)
		fiscal.CreateElement("IdPaese").SetText(country)
		fiscal.CreateElement("IdCodice").SetText(code)
	}
	if doc.PartnerName != "" {
		anag.CreateElement("Anagrafica").CreateElement("Denominazione").SetText(doc.PartnerName)
	}

	body := root.CreateElement("FatturaElettronicaBody")
	general := body.CreateElement("DatiGenerali").CreateElement("DatiGeneraliDocumento")
	general.CreateElement("TipoDocumento").SetText("TD01")
	if doc.Currency != "" {
		general.CreateElement("Divisa").SetText(doc.Currency)
	}
	if doc.IssueDate != nil {
		general.CreateElement("Data").SetText(doc.IssueDate.Format("2006-01-02"))
	}
	general.CreateElement("Numero").SetText(doc.Reference)

	goods := body.CreateElement("DatiBeniServizi")
	for i, line := range doc.Lines {
		el := goods.CreateElement("DettaglioLinee")
		el.CreateElement("NumeroLinea").SetText(fmt.Sprint(i + 1))
		el.CreateElement("Descrizione").SetText(line.Description)
		el.CreateElement("Quantita").SetText(line.Quantity.String())
		el.CreateElement("PrezzoUnitario").SetText(line.UnitPrice.String())
		el.CreateElement("PrezzoTotale").SetText(line.Amount().String())
		el.CreateElement("AliquotaIVA").SetText(line.TaxRate.String())
	}

	tree.Indent(2)
	data, err := tree.WriteToBytes()
	if err != nil {
		return "", nil, fmt.Errorf("serialize FatturaPA document: %w", err)
	}

	filename := fmt.Sprintf("%s_fatturapa.xml", doc.ID)
	return filename, data, nil
}

// splitVAT separates the leading ISO country prefix from the numeric
// code. VAT numbers without a letter prefix default to country IT.
func splitVAT(vat string) (country, code string) {
	if len(vat) >= 2 && isAlpha(vat[0]) && isAlpha(vat[1]) {
		return strings.ToUpper(vat[:2]), vat[2:]
	}
	return "IT", vat
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
