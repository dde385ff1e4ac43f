package facturae

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Decode applies a Factura-E envelope to a draft invoice. Multi-invoice
// envelopes are split upstream, so only the first Invoice element is
// read here.
func Decode(ctx context.Context, doc *domain.Document, fd registry.FileData) (*registry.DecodeResult, error) {
	if fd.Tree == nil {
		return nil, fmt.Errorf("%s: no XML tree", fd.Filename)
	}
	root := fd.Tree.Root()
	if root.Tag != "Facturae" {
		return nil, fmt.Errorf("%s: unexpected root <%s>", fd.Filename, root.Tag)
	}

	res := &registry.DecodeResult{}

	seller := xmlutil.Find(root, "Parties", "SellerParty")
	if seller != nil {
		doc.PartnerName = xmlutil.Text(seller, "LegalEntity", "CorporateName")
		doc.PartnerVAT = xmlutil.Text(seller, "TaxIdentification", "TaxIdentificationNumber")
		if doc.PartnerVAT == "" {
			res.Notes = append(res.Notes, "seller tax id missing, partner not matched")
		}
	} else {
		res.Notes = append(res.Notes, "no seller party in envelope")
	}

	invoice := xmlutil.Find(root, "Invoices", "Invoice")
	if invoice == nil {
		return nil, fmt.Errorf("%s: no Invoice element", fd.Filename)
	}

	doc.Reference = xmlutil.Text(invoice, "InvoiceHeader", "InvoiceNumber")
	issueData := xmlutil.Child(invoice, "InvoiceIssueData")
	if issueData != nil {
		if currency := xmlutil.Text(issueData, "InvoiceCurrencyCode"); currency != "" {
			doc.Currency = currency
		}
		if issued := xmlutil.Text(issueData, "IssueDate"); issued != "" {
			if d, err := time.Parse("2006-01-02", issued); err == nil {
				doc.IssueDate = &d
			} else {
				res.Notes = append(res.Notes, fmt.Sprintf("unparseable issue date %q", issued))
			}
		}
	}

	doc.ResetLines()
	items := xmlutil.Child(invoice, "Items")
	for _, el := range xmlutil.Children(items, "InvoiceLine") {
		doc.Lines = append(doc.Lines, domain.DocumentLine{
			Description: xmlutil.Text(el, "ItemDescription"),
			Quantity:    parseAmount(xmlutil.Text(el, "Quantity"), "quantity", res),
			UnitPrice:   parseAmount(xmlutil.Text(el, "UnitPriceWithoutTax"), "price", res),
			TaxRate:     parseAmount(xmlutil.Text(el, "TaxesOutputs", "Tax", "TaxRate"), "tax rate", res),
		})
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
