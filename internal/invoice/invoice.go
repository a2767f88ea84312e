package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkItem is hourly work billed over the business days of the billing
// month. The day range is implicit: the month ending at the billing date.
type WorkItem struct {
	Description string
	Rate        decimal.Decimal
}

// BillableItem is a flat-amount charge with no calendar component
type BillableItem struct {
	Description string
	Amount      decimal.Decimal
}

// TaxSpec describes the tax applied to the invoice subtotal. Percent is
// expressed as 0-100, so a value of 2 means 2%.
type TaxSpec struct {
	Percent decimal.Decimal
	Name    string
}

// LineItem is a computed invoice line. Quantity is billed days for work
// items and 1 for flat billables.
type LineItem struct {
	Description string
	Quantity    int
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice is the assembled result: ordered line items plus totals and
// billing metadata. It is a pure value; nothing is written or rendered.
type Invoice struct {
	BillingDate  time.Time
	BusinessName string
	Terms        string
	LineItems    []LineItem
	Subtotal     decimal.Decimal
	TaxName      string
	Tax          decimal.Decimal
	Total        decimal.Decimal
}
