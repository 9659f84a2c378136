package split

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsplit/internal/bill"
	"billsplit/pkg/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// familyBill mirrors a real January bill: $120 base + 3x$20 add-a-line +
// $45.25 account taxes = $225.25 plan pool over 7 lines, one line carrying
// $14.82 of its own services, $240.07 total due.
func familyBill() *bill.Bill {
	b := &bill.Bill{
		Date:     "Jan 13, 2026",
		TotalDue: dec("240.07"),
		Lines: []bill.LineItem{
			{Key: bill.AccountKey, Plans: dec("45.25"), Services: dec("0"), Total: dec("45.25")},
			{Key: "(555) 123-4567", Plans: dec("120.00"), Services: dec("14.82"), Total: dec("134.82")},
			{Key: "(555) 234-5678", Plans: dec("20.00"), Services: dec("0"), Total: dec("20.00")},
			{Key: "(555) 345-6789", Plans: dec("20.00"), Services: dec("0"), Total: dec("20.00")},
			{Key: "(555) 456-7890", Plans: dec("20.00"), Services: dec("0"), Total: dec("20.00")},
			{Key: "(555) 567-8901", Plans: dec("0.00"), Services: dec("0"), Total: dec("0.00")},
			{Key: "(555) 678-9012", Plans: dec("0.00"), Services: dec("0"), Total: dec("0.00")},
			{Key: "(555) 789-0123", Plans: dec("0.00"), Services: dec("0"), Total: dec("0.00")},
		},
	}
	return b
}

func TestAllocate(t *testing.T) {
	t.Run("splits the plan pool evenly including account charges", func(t *testing.T) {
		shares, err := Allocate(familyBill())
		require.NoError(t, err)
		require.Len(t, shares, 7)

		// 225.25 / 7 = 32.178571..., displayed as $32.18.
		want := dec("225.25").Div(dec("7"))
		for _, s := range shares {
			assert.True(t, want.Equal(s.SharedPlanPortion),
				"share %s: got %s", s.Key, s.SharedPlanPortion)
		}
		assert.Equal(t, "$32.18", money.FromDecimal(shares[0].SharedPlanPortion).Display())
	})

	t.Run("adds line services on top of the shared portion", func(t *testing.T) {
		shares, err := Allocate(familyBill())
		require.NoError(t, err)

		withServices := shares[0]
		assert.Equal(t, "(555) 123-4567", withServices.Key)
		assert.True(t, dec("14.82").Equal(withServices.LineServices))
		assert.Equal(t, "$47.00", money.FromDecimal(withServices.TotalOwed).Display())

		plain := shares[1]
		assert.True(t, plain.LineServices.IsZero())
		assert.Equal(t, "$32.18", money.FromDecimal(plain.TotalOwed).Display())
	})

	t.Run("totals reconcile with the bill within tolerance", func(t *testing.T) {
		b := familyBill()
		shares, err := Allocate(b)
		require.NoError(t, err)

		diff, err := Reconcile(b, shares)
		require.NoError(t, err)
		assert.True(t, diff.LessThanOrEqual(bill.Tolerance))

		// The displayed (rounded) totals also land within two cents.
		displayed := int64(0)
		for _, s := range shares {
			displayed += money.FromDecimal(s.TotalOwed).Cents()
		}
		assert.InDelta(t, 24007, displayed, 2)
	})

	t.Run("preserves bill line order", func(t *testing.T) {
		shares, err := Allocate(familyBill())
		require.NoError(t, err)

		assert.Equal(t, "(555) 123-4567", shares[0].Key)
		assert.Equal(t, "(555) 234-5678", shares[1].Key)
		assert.Equal(t, "(555) 789-0123", shares[6].Key)
	})

	t.Run("account entry never receives a share", func(t *testing.T) {
		shares, err := Allocate(familyBill())
		require.NoError(t, err)
		for _, s := range shares {
			assert.NotEqual(t, bill.AccountKey, s.Key)
		}
	})

	t.Run("zero phone lines is an allocation error", func(t *testing.T) {
		b := &bill.Bill{
			TotalDue: dec("45.25"),
			Lines: []bill.LineItem{
				{Key: bill.AccountKey, Plans: dec("45.25"), Total: dec("45.25")},
			},
		}
		_, err := Allocate(b)
		require.Error(t, err)

		var aerr *AllocationError
		require.ErrorAs(t, err, &aerr)
	})
}

func TestReconcile(t *testing.T) {
	t.Run("reports drift beyond tolerance", func(t *testing.T) {
		b := familyBill()
		shares := []Share{{Key: "(555) 123-4567", TotalOwed: dec("100.00")}}

		diff, err := Reconcile(b, shares)
		require.Error(t, err)
		assert.True(t, diff.GreaterThan(bill.Tolerance))
		assert.Contains(t, err.Error(), "240.07")
	})
}
