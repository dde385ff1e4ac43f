package ubl

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
	"github.com/heartmarshall/ediflow-backend/internal/edi/registry"
	"github.com/heartmarshall/ediflow-backend/internal/format/xmlutil"
)

// Decode applies a UBL Invoice or Order tree to a draft document.
// Recoverable extraction gaps (missing partner, unparseable numbers)
// are reported as notes, not errors.
func Decode(ctx context.Context, doc *domain.Document, fd registry.FileData) (*registry.DecodeResult, error) {
	if fd.Tree == nil {
		return nil, fmt.Errorf("%s: no XML tree", fd.Filename)
	}
	root := fd.Tree.Root()

	res := &registry.DecodeResult{}

	doc.Reference = xmlutil.Text(root, "ID")
	if currency := xmlutil.Text(root, "DocumentCurrencyCode"); currency != "" {
		doc.Currency = currency
	}
	if issued := xmlutil.Text(root, "IssueDate"); issued != "" {
		if d, err := time.Parse("2006-01-02", issued); err == nil {
			doc.IssueDate = &d
		} else {
			res.Notes = append(res.Notes, fmt.Sprintf("unparseable issue date %q", issued))
		}
	}

	decodeParty(root, doc, res)

	doc.ResetLines()
	switch root.Tag {
	case "Invoice":
		for _, el := range xmlutil.Children(root, "InvoiceLine") {
			doc.Lines = append(doc.Lines, decodeInvoiceLine(el, res))
		}
	case "Order":
		for _, el := range xmlutil.Children(root, "OrderLine") {
			doc.Lines = append(doc.Lines, decodeOrderLine(el, res))
		}
	default:
		return nil, fmt.Errorf("%s: unsupported UBL root <%s>", fd.Filename, root.Tag)
	}

	return res, nil
}

// decodeParty resolves the counterparty. Invoices name the supplier,
// orders name the seller.
func decodeParty(root *etree.Element, doc *domain.Document, res *registry.DecodeResult) {
	var party *etree.Element
	switch root.Tag {
	case "Invoice":
		party = xmlutil.Find(root, "AccountingSupplierParty", "Party")
	case "Order":
		party = xmlutil.Find(root, "SellerSupplierParty", "Party")
	}
	if party == nil {
		res.Notes = append(res.Notes, "no supplier party in document")
		return
	}

	doc.PartnerName = xmlutil.Text(party, "PartyName", "Name")
	doc.PartnerVAT = xmlutil.Text(party, "PartyTaxScheme", "CompanyID")
	if doc.PartnerVAT == "" {
		res.Notes = append(res.Notes, "supplier VAT number missing, partner not matched")
	}
}

func decodeInvoiceLine(el *etree.Element, res *registry.DecodeResult) domain.DocumentLine {
	line := domain.DocumentLine{
		Description: xmlutil.Text(el, "Item", "Name"),
		Quantity:    parseAmount(xmlutil.Text(el, "InvoicedQuantity"), "quantity", res),
		UnitPrice:   parseAmount(xmlutil.Text(el, "Price", "PriceAmount"), "price", res),
		TaxRate:     parseAmount(xmlutil.Text(el, "Item", "ClassifiedTaxCategory", "Percent"), "tax rate", res),
	}
	return line
}

func decodeOrderLine(el *etree.Element, res *registry.DecodeResult) domain.DocumentLine {
	item := xmlutil.Child(el, "LineItem")
	return domain.DocumentLine{
		Description: xmlutil.Text(item, "Item", "Name"),
		Quantity:    parseAmount(xmlutil.Text(item, "Quantity"), "quantity", res),
		UnitPrice:   parseAmount(xmlutil.Text(item, "Price", "PriceAmount"), "price", res),
		TaxRate:     parseAmount(xmlutil.Text(item, "Item", "ClassifiedTaxCategory", "Percent"), "tax rate", res),
	}
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
