// Package bill defines the structured representation of a parsed carrier
// invoice and the consistency checks applied to it before any money is split.
package bill

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// AccountKey is the sentinel line key for charges that belong to the account
// as a whole rather than to any single phone line.
const AccountKey = "Account"

// UnknownDate is used when the bill date cannot be located in the source
// text. The date is presentation-only and never affects the split.
const UnknownDate = "Unknown"

// Tolerance is the reconciliation slop accepted when comparing sums of
// monetary values. Two cents absorbs the rounding the carrier applies to
// individual rows.
var Tolerance = decimal.New(2, -2)

// LineItem is one row of the bill summary: a phone line's charges, or the
// account-level charges under AccountKey.
type LineItem struct {
	Key      string
	Plans    decimal.Decimal
	Services decimal.Decimal
	Total    decimal.Decimal
}

// IsAccount reports whether the item holds account-level charges.
func (li LineItem) IsAccount() bool {
	return li.Key == AccountKey
}

// Bill is a carrier invoice reduced to the figures the split needs.
// Lines preserves the order rows appeared in the source text.
type Bill struct {
	Date     string
	TotalDue decimal.Decimal
	Lines    []LineItem
}

// PhoneLines returns the items that represent billable phone lines,
// excluding the account entry, in source order.
func (b *Bill) PhoneLines() []LineItem {
	out := make([]LineItem, 0, len(b.Lines))
	for _, li := range b.Lines {
		if !li.IsAccount() {
			out = append(out, li)
		}
	}
	return out
}

// Account returns the account-level item and whether one was present.
func (b *Bill) Account() (LineItem, bool) {
	for _, li := range b.Lines {
		if li.IsAccount() {
			return li, true
		}
	}
	return LineItem{}, false
}

// ValidationError reports an internally inconsistent bill. The message
// always carries the numeric values involved so the mismatch can be chased
// back to the source PDF.
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bill validation failed (%s): %s", e.Check, e.Message)
}

// Validate checks the parsed bill for internal consistency. Hard failures
// (no lines, non-positive total, totals that do not reconcile) return a
// *ValidationError. Per-line plans+services drift within a line is only a
// warning: it does not change what anyone owes.
func (b *Bill) Validate(logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if len(b.PhoneLines()) == 0 {
		return &ValidationError{
			Check:   "lines",
			Message: "no phone lines found in bill",
		}
	}
	if !b.TotalDue.IsPositive() {
		return &ValidationError{
			Check:   "total_due",
			Message: fmt.Sprintf("total due must be positive, got %s", b.TotalDue),
		}
	}

	sum := decimal.Zero
	for _, li := range b.Lines {
		sum = sum.Add(li.Total)

		if diff := li.Total.Sub(li.Plans.Add(li.Services)).Abs(); diff.GreaterThan(Tolerance) {
			logger.Warn("line total does not match plans+services",
				"line", li.Key,
				"plans", li.Plans,
				"services", li.Services,
				"total", li.Total,
				"diff", diff)
		}
	}

	if diff := sum.Sub(b.TotalDue).Abs(); diff.GreaterThan(Tolerance) {
		return &ValidationError{
			Check: "total_reconciliation",
			Message: fmt.Sprintf("line totals sum to %s but bill total due is %s (diff %s)",
				sum.StringFixed(2), b.TotalDue.StringFixed(2), diff.StringFixed(2)),
		}
	}

	return nil
}

// FormatPhone assembles a canonical display phone number from a 3-digit
// area code and a 7-digit XXX-XXXX local part.
func FormatPhone(areaCode, local string) string {
	return fmt.Sprintf("(%s) %s", areaCode, local)
}

// FormatDigits formats a bare 10-digit number as (XXX) XXX-XXXX. It returns
// false when the input is not exactly ten digits.
func FormatDigits(digits string) (string, bool) {
	if len(digits) != 10 {
		return "", false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:]), true
}
