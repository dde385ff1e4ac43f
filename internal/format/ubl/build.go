package ubl

import (
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

// Build serializes a document as canonical UBL BIS 3 XML. The output is
// accepted by Decode, so decode(build(d)) reproduces d over the fields
// the format defines.
func Build(ctx context.Context, doc *domain.Document) (string, []byte, error) {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	var root *etree.Element
	if doc.Kind == domain.DocumentKindInvoice {
		root = tree.CreateElement("Invoice")
		root.CreateAttr("xmlns", invoiceNamespace)
	} else {
		root = tree.CreateElement("Order")
		root.CreateAttr("xmlns", orderNamespace)
	}
	root.CreateAttr("xmlns:cbc", cbcNamespace)
	root.CreateAttr("xmlns:cac", cacNamespace)

	cid := invoiceCustomizationID
	if doc.Kind != domain.DocumentKindInvoice {
		cid = orderCustomizationID
	}
	root.CreateElement("cbc:CustomizationID").SetText(cid)
	root.CreateElement("cbc:ID").SetText(doc.Reference)
	if doc.IssueDate != nil {
		root.CreateElement("cbc:IssueDate").SetText(doc.IssueDate.Format("2006-01-02"))
	}
	if doc.Currency != "" {
		root.CreateElement("cbc:DocumentCurrencyCode").SetText(doc.Currency)
	}

	buildParty(root, doc)

	for i, line := range doc.Lines {
		if doc.Kind == domain.DocumentKindInvoice {
			buildInvoiceLine(root, doc, i+1, line)
		} else {
			buildOrderLine(root, doc, i+1, line)
		}
	}

	tree.Indent(2)
	data, err := tree.WriteToBytes()
	if err != nil {
		return "", nil, fmt.Errorf("serialize UBL document: %w", err)
	}

	filename := fmt.Sprintf("%s_ubl_bis3.xml", doc.ID)
	return filename, data, nil
}

func buildParty(root *etree.Element, doc *domain.Document) {
	var container *etree.Element
	if root.Tag == "Invoice" {
		container = root.CreateElement("cac:AccountingSupplierParty")
	} else {
		container = root.CreateElement("cac:SellerSupplierParty")
	}
	party := container.CreateElement("cac:Party")
	if doc.PartnerName != "" {
		party.CreateElement("cac:PartyName").CreateElement("cbc:Name").SetText(doc.PartnerName)
	}
	if doc.PartnerVAT != "" {
		party.CreateElement("cac:PartyTaxScheme").CreateElement("cbc:CompanyID").SetText(doc.PartnerVAT)
	}
}

func buildInvoiceLine(root *etree.Element, doc *domain.Document, position int, line domain.DocumentLine) {
	el := root.CreateElement("cac:InvoiceLine")
	el.CreateElement("cbc:ID").SetText(strconv.Itoa(position))

	qty := el.CreateElement("cbc:InvoicedQuantity")
	qty.CreateAttr("unitCode", "C62")
	qty.SetText(line.Quantity.String())

	item := el.CreateElement("cac:Item")
	item.CreateElement("cbc:Name").SetText(line.Description)
	item.CreateElement("cac:ClassifiedTaxCategory").
		CreateElement("cbc:Percent").SetText(line.TaxRate.String())

	price := el.CreateElement("cac:Price").CreateElement("cbc:PriceAmount")
	price.CreateAttr("currencyID", doc.Currency)
	price.SetText(line.UnitPrice.String())
}

func buildOrderLine(root *etree.Element, doc *domain.Document, position int, line domain.DocumentLine) {
	el := root.CreateElement("cac:OrderLine")
	item := el.CreateElement("cac:LineItem")
	item.CreateElement("cbc:ID").SetText(strconv.Itoa(position))

	qty := item.CreateElement("cbc:Quantity")
	qty.CreateAttr("unitCode", "C62")
	qty.SetText(line.Quantity.String())

	itemEl := item.CreateElement("cac:Item")
	itemEl.CreateElement("cbc:Name").SetText(line.Description)
	itemEl.CreateElement("cac:ClassifiedTaxCategory").
		CreateElement("cbc:Percent").SetText(line.TaxRate.String())

	price := item.CreateElement("cac:Price").CreateElement("cbc:PriceAmount")
	price.CreateAttr("currencyID", doc.Currency)
	price.SetText(line.UnitPrice.String())
}
