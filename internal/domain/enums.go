package domain

// DocumentKind identifies the kind of business document a decoder targets.
type DocumentKind string

const (
	DocumentKindInvoice       DocumentKind = "INVOICE"
	DocumentKindPurchaseOrder DocumentKind = "PURCHASE_ORDER"
	DocumentKindSaleOrder     DocumentKind = "SALE_ORDER"
)

func (k DocumentKind) String() string { return string(k) }

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindInvoice, DocumentKindPurchaseOrder, DocumentKindSaleOrder:
		return true
	}
	return false
}

// DocumentState is the lifecycle state of a business document.
// Transitions are linear: DRAFT → POSTED → CANCELLED.
type DocumentState string

const (
	DocumentStateDraft     DocumentState = "DRAFT"
	DocumentStatePosted    DocumentState = "POSTED"
	DocumentStateCancelled DocumentState = "CANCELLED"
)

func (s DocumentState) String() string { return string(s) }

func (s DocumentState) IsValid() bool {
	switch s {
	case DocumentStateDraft, DocumentStatePosted, DocumentStateCancelled:
		return true
	}
	return false
}

// FormatTag names an EDI format recognised by the classifier set.
// The set is open: format bindings may register additional tags.
type FormatTag string

const (
	FormatTagUBLBIS3   FormatTag = "ubl-bis3"
	FormatTagFacturae  FormatTag = "facturae"
	FormatTagFatturaPA FormatTag = "fatturapa"
	FormatTagOtherXML  FormatTag = "other-xml"
	FormatTagPDF       FormatTag = "pdf"
	FormatTagBinary    FormatTag = "binary"
)

func (t FormatTag) String() string { return string(t) }

// MessageKind classifies an audit message.
type MessageKind string

const (
	MessageKindInfo     MessageKind = "INFO"
	MessageKindWarning  MessageKind = "WARNING"
	MessageKindError    MessageKind = "ERROR"
	MessageKindActivity MessageKind = "ACTIVITY"
)

func (m MessageKind) String() string { return string(m) }

func (m MessageKind) IsValid() bool {
	switch m {
	case MessageKindInfo, MessageKindWarning, MessageKindError, MessageKindActivity:
		return true
	}
	return false
}
