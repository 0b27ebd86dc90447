// Package report computes the dashboard and report figures. The functions in
// this file are pure: they operate on row slices already loaded from the
// stores and never touch the database themselves.
package report

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	paymentmodels "propertyhub/internal/payment/models"
	unitmodels "propertyhub/internal/unit/models"
)

// OccupancyBreakdown counts units per occupancy state.
type OccupancyBreakdown struct {
	Occupied    int `json:"occupied"`
	Vacant      int `json:"vacant"`
	Maintenance int `json:"maintenance"`
}

// MonthTotal is one bucket of the revenue trend.
type MonthTotal struct {
	Month  string          `json:"month"` // e.g. "Jan 2026"
	Amount decimal.Decimal `json:"amount"`
}

// OccupancyRate returns the share of occupied units as a whole percentage,
// rounded to the nearest integer. An empty portfolio is 0, not an error.
func OccupancyRate(units []*unitmodels.Unit) int {
	if len(units) == 0 {
		return 0
	}
	occupied := 0
	for _, u := range units {
		if u.Status == unitmodels.StatusOccupied {
			occupied++
		}
	}
	return int(math.Round(float64(occupied) / float64(len(units)) * 100))
}

// CollectionRate returns the share of Paid payments as a percentage with one
// fractional digit. Unknown statuses count toward the denominator only.
func CollectionRate(payments []*paymentmodels.Payment) float64 {
	if len(payments) == 0 {
		return 0
	}
	paid := 0
	for _, p := range payments {
		if p.Status == paymentmodels.StatusPaid {
			paid++
		}
	}
	rate := float64(paid) / float64(len(payments)) * 100
	return math.Round(rate*10) / 10
}

// MonthlyRevenue sums the monthly rent of occupied units.
func MonthlyRevenue(units []*unitmodels.Unit) decimal.Decimal {
	total := decimal.Zero
	for _, u := range units {
		if u.Status == unitmodels.StatusOccupied {
			total = total.Add(u.MonthlyRent)
		}
	}
	return total
}

// TotalCollected sums the amounts of Paid payments.
func TotalCollected(payments []*paymentmodels.Payment) decimal.Decimal {
	return sumByStatus(payments, paymentmodels.StatusPaid)
}

// TotalPending sums the amounts of Pending payments.
func TotalPending(payments []*paymentmodels.Payment) decimal.Decimal {
	return sumByStatus(payments, paymentmodels.StatusPending)
}

// TotalOverdue sums the amounts of Overdue payments.
func TotalOverdue(payments []*paymentmodels.Payment) decimal.Decimal {
	return sumByStatus(payments, paymentmodels.StatusOverdue)
}

// OutstandingBalance is everything billed but not collected.
func OutstandingBalance(payments []*paymentmodels.Payment) decimal.Decimal {
	return TotalPending(payments).Add(TotalOverdue(payments))
}

// ExpectedRevenue is the period total: collected plus outstanding.
func ExpectedRevenue(payments []*paymentmodels.Payment) decimal.Decimal {
	return TotalCollected(payments).Add(OutstandingBalance(payments))
}

func sumByStatus(payments []*paymentmodels.Payment, status paymentmodels.Status) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if p.Status == status {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// StatusCounts tallies units per occupancy state for the report donut.
func StatusCounts(units []*unitmodels.Unit) OccupancyBreakdown {
	var b OccupancyBreakdown
	for _, u := range units {
		switch u.Status {
		case unitmodels.StatusOccupied:
			b.Occupied++
		case unitmodels.StatusVacant:
			b.Vacant++
		case unitmodels.StatusMaintenance:
			b.Maintenance++
		}
	}
	return b
}

// SixMonthTrend buckets Paid payment amounts by the calendar month of their
// payment date. The result always has exactly six entries, oldest first,
// ending at the reference month inclusive. Months without payments carry a
// zero amount.
func SixMonthTrend(payments []*paymentmodels.Payment, refYear int, refMonth time.Month) []MonthTotal {
	type bucket struct{ year, month int }

	start := time.Date(refYear, refMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)
	totals := make(map[bucket]decimal.Decimal, 6)
	order := make([]bucket, 0, 6)
	trend := make([]MonthTotal, 0, 6)
	for i := 0; i < 6; i++ {
		m := start.AddDate(0, i, 0)
		b := bucket{m.Year(), int(m.Month())}
		totals[b] = decimal.Zero
		order = append(order, b)
	}

	for _, p := range payments {
		if p.Status != paymentmodels.StatusPaid || p.PaymentDate == nil {
			continue
		}
		b := bucket{p.PaymentDate.Year(), int(p.PaymentDate.Month())}
		if current, ok := totals[b]; ok {
			totals[b] = current.Add(p.Amount)
		}
	}

	for _, b := range order {
		label := time.Date(b.year, time.Month(b.month), 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
		trend = append(trend, MonthTotal{Month: label, Amount: totals[b]})
	}
	return trend
}
