// Package report turns raw order, transaction, and line-item records for a
// date range into the derived metrics, growth comparisons, and chart series
// shown on the dashboard pages. The aggregation is pure and stateless: every
// build fetches fresh snapshots, computes over them in memory, and mutates
// nothing.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/selerasa/restopos/internal/domain/order"
	"github.com/selerasa/restopos/internal/domain/payment"
)

// Default option values shared by all dashboard variants.
const (
	DefaultTopN     = 5
	DefaultHourFrom = 8
	DefaultHourTo   = 22
)

// Options parameterizes a report build. The previously copy-pasted dashboard
// variants (dense vs. sparse date buckets, hour filtering on/off) are explicit
// configuration here.
type Options struct {
	// TopN caps the top-menu ranking length. Defaults to DefaultTopN.
	TopN int

	// DenseDays pre-seeds every day of the range with a zero revenue bucket,
	// producing a dense series. The default is a sparse series with buckets
	// only for dates that have at least one transaction.
	DenseDays bool

	// FullDay disables the intraday display window so all 24 hour buckets are
	// emitted. By default the hourly series is restricted to
	// [DefaultHourFrom, DefaultHourTo].
	FullDay bool

	// IncludeTransactions attaches the raw transaction list, newest first,
	// for detail tables.
	IncludeTransactions bool
}

func (o Options) withDefaults() Options {
	if o.TopN <= 0 {
		o.TopN = DefaultTopN
	}
	return o
}

func (o Options) hourWindow() (from, to int) {
	if o.FullDay {
		return 0, 23
	}
	return DefaultHourFrom, DefaultHourTo
}

// OrderRow is the read-only order snapshot the aggregator consumes.
type OrderRow struct {
	ID     int64
	Date   Date
	Status order.Status
	Total  decimal.Decimal
}

// TransactionRow is the read-only transaction snapshot the aggregator
// consumes. Amount is zero, never an error, for rows with a missing value.
type TransactionRow struct {
	ID          string
	OrderID     int64
	TableNo     string
	CashierName string
	Date        Date
	Amount      decimal.Decimal
	Method      payment.Method
	CreatedAt   time.Time
}

// SoldItemRow is one order line item joined with its menu item and the parent
// order's creation timestamp.
type SoldItemRow struct {
	MenuItemID     int64
	MenuName       string
	Category       string
	Quantity       int
	Subtotal       decimal.Decimal
	OrderCreatedAt time.Time
}

// Overview holds the headline totals and their growth versus the immediately
// preceding period of equal length.
type Overview struct {
	TotalOrders       int
	TotalRevenue      decimal.Decimal
	TotalTransactions int
	AvgOrderValue     decimal.Decimal

	RevenueGrowth     float64
	OrderGrowth       float64
	TransactionGrowth float64
	AvgOrderGrowth    float64
}

// RevenuePoint is one bucket of the revenue-by-date series.
type RevenuePoint struct {
	Date    Date
	Label   string
	Revenue decimal.Decimal
}

// HourlyPoint is one bucket of the hourly order series. Orders counts line
// items by the parent order's creation hour, so a three-item order
// contributes three to its hour.
type HourlyPoint struct {
	Hour   int
	Label  string // "08:00"
	Orders int
}

// MenuRank is one entry of the top-menu ranking.
type MenuRank struct {
	MenuItemID int64
	Name       string
	Category   string
	Quantity   int
	Revenue    decimal.Decimal
}

// StatusBreakdown counts in-range orders per lifecycle status.
type StatusBreakdown struct {
	Pending    int
	Proses     int
	Selesai    int
	Dibatalkan int
}

// MethodBreakdown counts in-range transactions per payment method.
type MethodBreakdown struct {
	Tunai int
	Debit int
	QRIS  int
}

// Report is the flat result handed to the presentation layer.
type Report struct {
	Range          Range
	Overview       Overview
	RevenueByDate  []RevenuePoint
	HourlyOrders   []HourlyPoint
	TopMenu        []MenuRank
	OrdersByStatus StatusBreakdown
	PaymentMethods MethodBreakdown
	Transactions   []TransactionRow // only when Options.IncludeTransactions
	GeneratedAt    time.Time
}

// Growth returns the percentage change of current versus previous. A previous
// of zero yields 100 when anything was gained and 0 when nothing was; the
// same rule applies to every overview metric.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}
