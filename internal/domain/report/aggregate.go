package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/selerasa/restopos/internal/domain/order"
	"github.com/selerasa/restopos/internal/domain/payment"
)

// sumAmounts totals transaction amounts. Missing amounts arrive as zero from
// the storage layer, so a single bad row never blanks a report.
func sumAmounts(txs []TransactionRow) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txs {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// buildOverview computes the headline totals for the current period and their
// growth against the previous one. Average order value divides revenue by the
// order count, not the transaction count, and is zero when there are no
// orders.
func buildOverview(orders []OrderRow, txs []TransactionRow, prevOrders []OrderRow, prevTxs []TransactionRow) Overview {
	revenue := sumAmounts(txs)
	avg := decimal.Zero
	if len(orders) > 0 {
		avg = revenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	prevRevenue := sumAmounts(prevTxs)
	prevAvg := decimal.Zero
	if len(prevOrders) > 0 {
		prevAvg = prevRevenue.Div(decimal.NewFromInt(int64(len(prevOrders))))
	}

	return Overview{
		TotalOrders:       len(orders),
		TotalRevenue:      revenue,
		TotalTransactions: len(txs),
		AvgOrderValue:     avg,

		RevenueGrowth:     Growth(revenue.InexactFloat64(), prevRevenue.InexactFloat64()),
		OrderGrowth:       Growth(float64(len(orders)), float64(len(prevOrders))),
		TransactionGrowth: Growth(float64(len(txs)), float64(len(prevTxs))),
		AvgOrderGrowth:    Growth(avg.InexactFloat64(), prevAvg.InexactFloat64()),
	}
}

// revenueSeries groups transactions by calendar date, summing amounts. The
// sparse form emits a bucket only for dates with at least one transaction;
// the dense form pre-seeds every day of the range with zero first. Sorted
// ascending by date either way.
func revenueSeries(txs []TransactionRow, rng Range, dense bool) []RevenuePoint {
	buckets := make(map[string]decimal.Decimal)
	dates := make(map[string]Date)

	if dense {
		for _, d := range rng.Dates() {
			buckets[d.String()] = decimal.Zero
			dates[d.String()] = d
		}
	}

	for _, t := range txs {
		key := t.Date.String()
		if dense {
			// Dense series only covers the requested window.
			if _, ok := buckets[key]; !ok {
				continue
			}
		}
		buckets[key] = buckets[key].Add(t.Amount)
		dates[key] = t.Date
	}

	out := make([]RevenuePoint, 0, len(buckets))
	for key, revenue := range buckets {
		d := dates[key]
		out = append(out, RevenuePoint{Date: d, Label: d.Label(), Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// hourlySeries counts line items by the hour their parent order was created,
// one fixed bucket per hour of the display window.
func hourlySeries(items []SoldItemRow, hourFrom, hourTo int) []HourlyPoint {
	var counts [24]int
	for _, it := range items {
		if it.OrderCreatedAt.IsZero() {
			continue
		}
		counts[it.OrderCreatedAt.Hour()]++
	}

	out := make([]HourlyPoint, 0, hourTo-hourFrom+1)
	for h := hourFrom; h <= hourTo; h++ {
		out = append(out, HourlyPoint{
			Hour:   h,
			Label:  fmt.Sprintf("%02d:00", h),
			Orders: counts[h],
		})
	}
	return out
}

// topMenu ranks menu items by total quantity sold, descending, truncated to
// n. Ties break deterministically on revenue descending, then menu item ID
// ascending.
func topMenu(items []SoldItemRow, n int) []MenuRank {
	byID := make(map[int64]*MenuRank)
	ordered := make([]int64, 0)
	for _, it := range items {
		if it.MenuItemID == 0 {
			continue
		}
		r, ok := byID[it.MenuItemID]
		if !ok {
			r = &MenuRank{
				MenuItemID: it.MenuItemID,
				Name:       it.MenuName,
				Category:   it.Category,
				Revenue:    decimal.Zero,
			}
			byID[it.MenuItemID] = r
			ordered = append(ordered, it.MenuItemID)
		}
		r.Quantity += it.Quantity
		r.Revenue = r.Revenue.Add(it.Subtotal)
	}

	ranks := make([]MenuRank, 0, len(ordered))
	for _, id := range ordered {
		ranks = append(ranks, *byID[id])
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Quantity != ranks[j].Quantity {
			return ranks[i].Quantity > ranks[j].Quantity
		}
		if !ranks[i].Revenue.Equal(ranks[j].Revenue) {
			return ranks[i].Revenue.GreaterThan(ranks[j].Revenue)
		}
		return ranks[i].MenuItemID < ranks[j].MenuItemID
	})

	if len(ranks) > n {
		ranks = ranks[:n]
	}
	return ranks
}

// statusBreakdown counts in-range orders per lifecycle status.
func statusBreakdown(orders []OrderRow) StatusBreakdown {
	var b StatusBreakdown
	for _, o := range orders {
		switch o.Status {
		case order.StatusPending:
			b.Pending++
		case order.StatusProses:
			b.Proses++
		case order.StatusSelesai:
			b.Selesai++
		case order.StatusDibatalkan:
			b.Dibatalkan++
		}
	}
	return b
}

// methodBreakdown counts in-range transactions per payment method.
func methodBreakdown(txs []TransactionRow) MethodBreakdown {
	var b MethodBreakdown
	for _, t := range txs {
		switch t.Method {
		case payment.MethodTunai:
			b.Tunai++
		case payment.MethodDebit:
			b.Debit++
		case payment.MethodQRIS:
			b.QRIS++
		}
	}
	return b
}

// newestFirst orders transactions by creation time descending for detail
// tables.
func newestFirst(txs []TransactionRow) []TransactionRow {
	out := make([]TransactionRow, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
