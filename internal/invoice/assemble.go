package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/invoice-maker/internal/calendar"
	"github.com/username/invoice-maker/pkg/dateutil"
)

var hundred = decimal.NewFromInt(100)

// Assemble computes the invoice for one billing month. Work items are
// billed per business day in the month ending at billingDate (minus
// daysOff); billable items are flat charges. Line items keep input order,
// work items first. Returns ErrValidation on out-of-range input.
func Assemble(
	work []WorkItem,
	billables []BillableItem,
	tax TaxSpec,
	daysOff calendar.DateSet,
	billingDate time.Time,
) (*Invoice, error) {
	if !dateutil.IsEndOfMonth(billingDate) {
		return nil, fmt.Errorf("%w: billing date %s is not the last day of its month",
			ErrValidation, dateutil.FormatDate(billingDate))
	}
	if tax.Percent.IsNegative() || tax.Percent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: tax percentage %s is outside [0, 100]",
			ErrValidation, tax.Percent)
	}

	inv := &Invoice{
		BillingDate: billingDate,
		TaxName:     tax.Name,
		Subtotal:    decimal.Zero,
	}

	billedDays := calendar.BusinessDaysBilled(billingDate, daysOff)

	for _, item := range work {
		if item.Rate.IsNegative() {
			return nil, fmt.Errorf("%w: hourly rate %s for %q is negative",
				ErrValidation, FormatCents(item.Rate), item.Description)
		}
		if item.Description == "" {
			continue
		}

		amount := RoundCents(item.Rate.Mul(decimal.NewFromInt(int64(billedDays))))
		inv.LineItems = append(inv.LineItems, LineItem{
			Description: item.Description,
			Quantity:    billedDays,
			Rate:        item.Rate,
			Amount:      amount,
		})
		inv.Subtotal = inv.Subtotal.Add(amount)
	}

	for _, item := range billables {
		amount := RoundCents(item.Amount)
		inv.LineItems = append(inv.LineItems, LineItem{
			Description: item.Description,
			Quantity:    1,
			Rate:        amount,
			Amount:      amount,
		})
		inv.Subtotal = inv.Subtotal.Add(amount)
	}

	inv.Tax = RoundCents(inv.Subtotal.Mul(tax.Percent).Div(hundred))
	inv.Total = inv.Subtotal.Add(inv.Tax)

	return inv, nil
}
