package facturae

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/heartmarshall/ediflow-backend/internal/domain"
)

const buildNamespace = "http://www.facturae.es/Facturae/2014/v3.2.1/Facturae"

// Build serializes an invoice as a single-invoice Factura-E envelope.
// The output is accepted by Decode, so decode(build(d)) reproduces d
// over the fields the format defines.
func Build(ctx context.Context, doc *domain.Document) (string, []byte, error) {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := tree.CreateElement("fe:Facturae")
	root.CreateAttr("xmlns:fe", buildNamespace)

	header := root.CreateElement("FileHeader")
	header.CreateElement("SchemaVersion").SetText("3.2.1")
	header.CreateElement("Modality").SetText("I")

	seller := root.CreateElement("Parties").CreateElement("SellerParty")
	if doc.PartnerVAT != "" {
		seller.CreateElement("TaxIdentification").
			CreateElement("TaxIdentificationNumber").SetText(doc.PartnerVAT)
	}
	if doc.PartnerName != "" {
		seller.CreateElement("LegalEntity").
			CreateElement("CorporateName").SetText(doc.PartnerName)
	}

	invoice := root.CreateElement("Invoices").CreateElement("Invoice")
	invoice.CreateElement("InvoiceHeader").
		CreateElement("InvoiceNumber").SetText(doc.Reference)

	issueData := invoice.CreateElement("InvoiceIssueData")
	if doc.IssueDate != nil {
		issueData.CreateElement("IssueDate").SetText(doc.IssueDate.Format("2006-01-02"))
	}
	if doc.Currency != "" {
		issueData.CreateElement("InvoiceCurrencyCode").SetText(doc.Currency)
	}

	items := invoice.CreateElement("Items")
	for _, line := range doc.Lines {
		el := items.CreateElement("InvoiceLine")
		el.CreateElement("ItemDescription").SetText(line.Description)
		el.CreateElement("Quantity").SetText(line.Quantity.String())
		el.CreateElement("UnitPriceWithoutTax").SetText(line.UnitPrice.String())
		el.CreateElement("TotalCost").SetText(line.Amount().String())
		el.CreateElement("TaxesOutputs").CreateElement("Tax").
			CreateElement("TaxRate").SetText(line.TaxRate.String())
	}

	tree.Indent(2)
	data, err := tree.WriteToBytes()
	if err != nil {
		return "", nil, fmt.Errorf("serialize Factura-E document: %w", err)
	}

	filename := fmt.Sprintf("%s_facturae.xml", doc.ID)
	return filename, data, nil
}
