package fatturapa

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Decode applies a FatturaPA transmission to a draft invoice. Multi-body
// transmissions are split upstream, so only the first body is read here.
func Decode(ctx context.Context, doc *domain.Document, fd registry.FileData) (*registry.DecodeResult, error) {
	if fd.Tree == nil {
		return nil, fmt.Errorf("%s: no XML tree", fd.Filename)
	}
	root := fd.Tree.Root()
	if root.Tag != "FatturaElettronica" {
		return nil, fmt.Errorf("%s: unexpected root <%s>", fd.Filename, root.Tag)
	}

	res := &registry.DecodeResult{}

	supplier := xmlutil.Find(root, "FatturaElettronicaHeader", "CedentePrestatore", "DatiAnagrafici")
	if supplier != nil {
		doc.PartnerName = xmlutil.Text(supplier, "Anagrafica", "Denominazione")
		country := xmlutil.Text(supplier, "IdFiscaleIVA", "IdPaese")
		code := xmlutil.Text(supplier, "IdFiscaleIVA", "IdCodice")
		if code != "" {
			doc.PartnerVAT = country + code
		} else {
			res.Notes = append(res.Notes, "supplier VAT number missing, partner not matched")
		}
	} else {
		res.Notes = append(res.Notes, "no supplier data in transmission")
	}

	body := xmlutil.Child(root, "FatturaElettronicaBody")
	if body == nil {
		return nil, fmt.Errorf("%s: no FatturaElettronicaBody", fd.Filename)
	}

	header := xmlutil.Find(body, "DatiGenerali", "DatiGeneraliDocumento")
	if header != nil {
		if currency := xmlutil.Text(header, "Divisa"); currency != "" {
			doc.Currency = currency
		}
		doc.Reference = xmlutil.Text(header, "Numero")
		if issued := xmlutil.Text(header, "Data"); issued != "" {
			if d, err := time.Parse("2006-01-02", issued); err == nil {
				doc.IssueDate = &d
			} else {
				res.Notes = append(res.Notes, fmt.Sprintf("unparseable document date %q", issued))
			}
		}
	}

	doc.ResetLines()
	goods := xmlutil.Find(body, "DatiBeniServizi")
	for _, el := range xmlutil.Children(goods, "DettaglioLinee") {
		line := domain.DocumentLine{
			Description: xmlutil.Text(el, "Descrizione"),
			Quantity:    parseAmount(xmlutil.Text(el, "Quantita"), "quantity", res),
			UnitPrice:   parseAmount(xmlutil.Text(el, "PrezzoUnitario"), "price", res),
			TaxRate:     parseAmount(xmlutil.Text(el, "AliquotaIVA"), "tax rate", res),
		}
		// Services without a quantity default to 1.
		if xmlutil.Text(el, "Quantita") == "" {
			line.Quantity = decimal.NewFromInt(1)
		}
		doc.Lines = append(doc.Lines, line)
	}

	return res, nil
}

func parseAmount(s, what string, res *registry.DecodeResult) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		res.Notes = append(res.Notes, fmt.Sprintf("unparseable %s %q", what, s))
		return decimal.Zero
	}
	return d
}
