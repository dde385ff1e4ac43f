package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Document is a business document populated by the ingestion pipeline:
// an invoice, a purchase order, or a sale order.
type Document struct {
	ID    uuid.UUID
	Kind  DocumentKind
	State DocumentState

	PartnerName string
	PartnerVAT  string
	Currency    string

	// Reference is the counterparty's document number.
	Reference string
	IssueDate *time.Time

	Lines []DocumentLine

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentLine is a single line of a business document.
type DocumentLine struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Position    int
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// Amount returns quantity × unit price for the line.
func (l DocumentLine) Amount() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}

// Total returns the untaxed total over all lines.
func (d *Document) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Amount())
	}
	return total
}

// IsDraft reports whether decoders may still write to the document.
func (d *Document) IsDraft() bool {
	return d.State == DocumentStateDraft
}

// Post transitions the document DRAFT → POSTED.
func (d *Document) Post() error {
	if d.State != DocumentStateDraft {
		return fmt.Errorf("post %s document: %w", d.State, ErrConflict)
	}
	d.State = DocumentStatePosted
	return nil
}

// Cancel transitions the document POSTED → CANCELLED.
func (d *Document) Cancel() error {
	if d.State != DocumentStatePosted {
		return fmt.Errorf("cancel %s document: %w", d.State, ErrConflict)
	}
	d.State = DocumentStateCancelled
	return nil
}

// ResetLines drops all lines. Decoders call it before writing theirs so
// that re-applying the same input is idempotent rather than appending.
func (d *Document) ResetLines() {
	d.Lines = nil
}

// DocumentFilter defines parameters for listing documents.
type DocumentFilter struct {
	// Kind restricts the list to one document kind.
	Kind *DocumentKind

	// State restricts the list to one lifecycle state.
	State *DocumentState

	// Search matches partner name and reference, case-insensitive.
	Search *string

	Limit  int
	Offset int
}
