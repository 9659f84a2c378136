// Package split apportions a parsed bill across the phone lines of a shared
// plan: every plan-level charge (including account-level ones) goes into a
// pool divided evenly, and each line pays its own services on top.
package split

import (
	"fmt"

	"github.com/shopspring/decimal"

	"billsplit/internal/bill"
)

// Share is what one phone line owes.
type Share struct {
	Key string
	// SharedPlanPortion keeps full decimal precision; rounding to cents
	// happens only when the value is displayed.
	SharedPlanPortion decimal.Decimal
	LineServices      decimal.Decimal
	TotalOwed         decimal.Decimal
}

// AllocationError reports degenerate input the split cannot be computed
// from, e.g. a bill with no billable phone lines.
type AllocationError struct {
	Message string
}

func (e *AllocationError) Error() string {
	return "allocation failed: " + e.Message
}

// Allocate computes each phone line's share of a validated bill. The caller
// is expected to have run bill.Validate first; Allocate only guards against
// the division-by-zero case. Output order matches the bill's line order.
func Allocate(b *bill.Bill) ([]Share, error) {
	phones := b.PhoneLines()
	if len(phones) == 0 {
		return nil, &AllocationError{Message: "no phone lines to divide the plan pool across"}
	}

	pool := decimal.Zero
	for _, li := range b.Lines {
		pool = pool.Add(li.Plans)
	}

	perLine := pool.Div(decimal.NewFromInt(int64(len(phones))))

	shares := make([]Share, 0, len(phones))
	for _, li := range phones {
		shares = append(shares, Share{
			Key:               li.Key,
			SharedPlanPortion: perLine,
			LineServices:      li.Services,
			TotalOwed:         perLine.Add(li.Services),
		})
	}
	return shares, nil
}

// Reconcile checks that the shares sum back to the bill total within the
// accepted tolerance and returns the difference. A mismatch here after a
// successful validation indicates a parser bug, not bad input.
func Reconcile(b *bill.Bill, shares []Share) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.TotalOwed)
	}
	diff := sum.Sub(b.TotalDue).Abs()
	if diff.GreaterThan(bill.Tolerance) {
		return diff, fmt.Errorf("allocated total %s does not reconcile with bill total %s (diff %s)",
			sum.StringFixed(2), b.TotalDue.StringFixed(2), diff.StringFixed(2))
	}
	return diff, nil
}
