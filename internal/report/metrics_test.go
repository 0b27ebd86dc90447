package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentmodels "propertyhub/internal/payment/models"
	unitmodels "propertyhub/internal/unit/models"
)

func unit(status unitmodels.Status, rent int64) *unitmodels.Unit {
	return &unitmodels.Unit{Status: status, MonthlyRent: decimal.NewFromInt(rent)}
}

func payment(status paymentmodels.Status, amount int64, paidAt *time.Time) *paymentmodels.Payment {
	return &paymentmodels.Payment{Status: status, Amount: decimal.NewFromInt(amount), PaymentDate: paidAt}
}

func paidOn(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	return &t
}

func TestOccupancyRate(t *testing.T) {
	assert.Zero(t, OccupancyRate(nil), "empty portfolio is 0, not a division error")

	units := []*unitmodels.Unit{
		unit(unitmodels.StatusOccupied, 1200),
		unit(unitmodels.StatusOccupied, 1300),
		unit(unitmodels.StatusVacant, 1100),
	}
	// 2/3 = 66.67%, rounds to 67.
	assert.Equal(t, 67, OccupancyRate(units))

	assert.Equal(t, 100, OccupancyRate(units[:2]))
}

func TestCollectionRate(t *testing.T) {
	assert.Zero(t, CollectionRate(nil))

	payments := []*paymentmodels.Payment{
		payment(paymentmodels.StatusPaid, 100, nil),
		payment(paymentmodels.StatusPending, 100, nil),
		payment(paymentmodels.StatusOverdue, 100, nil),
	}
	// 1/3 = 33.333...%, one fractional digit.
	assert.InDelta(t, 33.3, CollectionRate(payments), 0.001)

	// Unknown statuses count toward the denominator only.
	withUnknown := append(payments, payment("Refunded", 100, nil))
	assert.InDelta(t, 25.0, CollectionRate(withUnknown), 0.001)
}

func TestMonthlyRevenue(t *testing.T) {
	units := []*unitmodels.Unit{
		unit(unitmodels.StatusOccupied, 1200),
		unit(unitmodels.StatusVacant, 9999),
		unit(unitmodels.StatusOccupied, 1300),
	}
	assert.True(t, MonthlyRevenue(units).Equal(decimal.NewFromInt(2500)))
	assert.True(t, MonthlyRevenue(nil).IsZero())
}

func TestAmountSums(t *testing.T) {
	payments := []*paymentmodels.Payment{
		payment(paymentmodels.StatusPaid, 1500, nil),
		payment(paymentmodels.StatusPaid, 1400, nil),
		payment(paymentmodels.StatusPending, 1600, nil),
		payment(paymentmodels.StatusOverdue, 1100, nil),
		payment(paymentmodels.StatusPaid, 0, nil), // zero amounts contribute 0, never error
	}

	assert.True(t, TotalCollected(payments).Equal(decimal.NewFromInt(2900)))
	assert.True(t, TotalPending(payments).Equal(decimal.NewFromInt(1600)))
	assert.True(t, TotalOverdue(payments).Equal(decimal.NewFromInt(1100)))
	assert.True(t, OutstandingBalance(payments).Equal(decimal.NewFromInt(2700)))
	assert.True(t, ExpectedRevenue(payments).Equal(decimal.NewFromInt(5600)))
}

func TestStatusCounts(t *testing.T) {
	units := []*unitmodels.Unit{
		unit(unitmodels.StatusOccupied, 1200),
		unit(unitmodels.StatusVacant, 1100),
		unit(unitmodels.StatusVacant, 1150),
		unit(unitmodels.StatusMaintenance, 1000),
	}
	b := StatusCounts(units)
	assert.Equal(t, 1, b.Occupied)
	assert.Equal(t, 2, b.Vacant)
	assert.Equal(t, 1, b.Maintenance)
}

func TestSixMonthTrend(t *testing.T) {
	payments := []*paymentmodels.Payment{
		payment(paymentmodels.StatusPaid, 1500, paidOn(2026, time.March, 3)),
		payment(paymentmodels.StatusPaid, 1400, paidOn(2026, time.March, 12)),
		payment(paymentmodels.StatusPaid, 1300, paidOn(2026, time.January, 5)),
		payment(paymentmodels.StatusPaid, 1200, paidOn(2025, time.November, 2)),
		// Outside the window.
		payment(paymentmodels.StatusPaid, 9999, paidOn(2025, time.September, 1)),
		// Not paid, or paid without a date: excluded.
		payment(paymentmodels.StatusPending, 500, paidOn(2026, time.February, 1)),
		payment(paymentmodels.StatusPaid, 500, nil),
	}

	trend := SixMonthTrend(payments, 2026, time.March)
	require.Len(t, trend, 6)

	assert.Equal(t, "Oct 2025", trend[0].Month)
	assert.Equal(t, "Mar 2026", trend[5].Month)

	assert.True(t, trend[0].Amount.IsZero())
	assert.True(t, trend[1].Amount.Equal(decimal.NewFromInt(1200)), "Nov 2025")
	assert.True(t, trend[2].Amount.IsZero(), "Dec 2025 has no payments")
	assert.True(t, trend[3].Amount.Equal(decimal.NewFromInt(1300)), "Jan 2026")
	assert.True(t, trend[4].Amount.IsZero(), "Feb 2026")
	assert.True(t, trend[5].Amount.Equal(decimal.NewFromInt(2900)), "Mar 2026")
}

func TestSixMonthTrendEmpty(t *testing.T) {
	trend := SixMonthTrend(nil, 2026, time.March)
	require.Len(t, trend, 6)
	for _, m := range trend {
		assert.True(t, m.Amount.IsZero())
	}
}
