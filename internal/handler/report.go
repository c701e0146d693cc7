package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/selerasa/restopos/internal/domain/report"
)

// GetReport builds a report for the requested date range on demand.
//
// Query parameters:
//
//	start, end    inclusive range bounds, YYYY-MM-DD; default is the last
//	              30 days ending today
//	top           top-menu ranking length
//	dense         "true" emits a zero bucket for every day of the range
//	full_day      "true" disables the intraday display window
//	transactions  "true" attaches the raw transaction list, newest first
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rng, opts, err := parseReportQuery(r, report.DateOf(h.now()))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := h.reports.Build(r.Context(), rng, opts)
	if err != nil {
		h.internalError(w, r, "build report", err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeReport(e, rep)
	})
}

func parseReportQuery(r *http.Request, today report.Date) (report.Range, report.Options, error) {
	q := r.URL.Query()

	rng := report.LastNDays(today, 30)
	if s, e := q.Get("start"), q.Get("end"); s != "" || e != "" {
		start, err := report.ParseDate(s)
		if err != nil {
			return report.Range{}, report.Options{}, err
		}
		end, err := report.ParseDate(e)
		if err != nil {
			return report.Range{}, report.Options{}, err
		}
		rng, err = report.NewRange(start, end)
		if err != nil {
			return report.Range{}, report.Options{}, err
		}
	}

	opts := report.Options{
		DenseDays:           q.Get("dense") == "true",
		FullDay:             q.Get("full_day") == "true",
		IncludeTransactions: q.Get("transactions") == "true",
	}
	if top := q.Get("top"); top != "" {
		n, err := strconv.Atoi(top)
		if err != nil || n <= 0 {
			return report.Range{}, report.Options{}, errors.New("top must be a positive integer")
		}
		opts.TopN = n
	}
	return rng, opts, nil
}

func encodeReport(e *jx.Encoder, rep *report.Report) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("range", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("start", func(e *jx.Encoder) { e.Str(rep.Range.Start.String()) })
				e.Field("end", func(e *jx.Encoder) { e.Str(rep.Range.End.String()) })
			})
		})
		e.Field("overview", func(e *jx.Encoder) { encodeOverview(e, rep.Overview) })
		e.Field("revenue_by_date", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range rep.RevenueByDate {
					e.Obj(func(e *jx.Encoder) {
						e.Field("date", func(e *jx.Encoder) { e.Str(p.Date.String()) })
						e.Field("label", func(e *jx.Encoder) { e.Str(p.Label) })
						e.Field("revenue", func(e *jx.Encoder) { encodeDecimal(e, p.Revenue) })
					})
				}
			})
		})
		e.Field("hourly_orders", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range rep.HourlyOrders {
					e.Obj(func(e *jx.Encoder) {
						e.Field("hour", func(e *jx.Encoder) { e.Int(p.Hour) })
						e.Field("label", func(e *jx.Encoder) { e.Str(p.Label) })
						e.Field("orders", func(e *jx.Encoder) { e.Int(p.Orders) })
					})
				}
			})
		})
		e.Field("top_menu", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, m := range rep.TopMenu {
					e.Obj(func(e *jx.Encoder) {
						e.Field("menu_item_id", func(e *jx.Encoder) { e.Int64(m.MenuItemID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(m.Name) })
						e.Field("category", func(e *jx.Encoder) { e.Str(m.Category) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(m.Quantity) })
						e.Field("revenue", func(e *jx.Encoder) { encodeDecimal(e, m.Revenue) })
					})
				}
			})
		})
		e.Field("orders_by_status", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("pending", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Pending) })
				e.Field("proses", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Proses) })
				e.Field("selesai", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Selesai) })
				e.Field("dibatalkan", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Dibatalkan) })
			})
		})
		e.Field("payment_methods", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("tunai", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.Tunai) })
				e.Field("debit", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.Debit) })
				e.Field("qris", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.QRIS) })
			})
		})
		if rep.Transactions != nil {
			e.Field("transactions", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, tx := range rep.Transactions {
						e.Obj(func(e *jx.Encoder) {
							e.Field("id", func(e *jx.Encoder) { e.Str(tx.ID) })
							e.Field("order_id", func(e *jx.Encoder) { e.Int64(tx.OrderID) })
							e.Field("table_no", func(e *jx.Encoder) { e.Str(tx.TableNo) })
							e.Field("cashier_name", func(e *jx.Encoder) { e.Str(tx.CashierName) })
							e.Field("date", func(e *jx.Encoder) { e.Str(tx.Date.String()) })
							e.Field("amount", func(e *jx.Encoder) { encodeDecimal(e, tx.Amount) })
							e.Field("method", func(e *jx.Encoder) { e.Str(string(tx.Method)) })
						})
					}
				})
			})
		}
		e.Field("generated_at", func(e *jx.Encoder) { encodeTime(e, rep.GeneratedAt) })
	})
}

func encodeOverview(e *jx.Encoder, o report.Overview) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("total_orders", func(e *jx.Encoder) { e.Int(o.TotalOrders) })
		e.Field("total_revenue", func(e *jx.Encoder) { encodeDecimal(e, o.TotalRevenue) })
		e.Field("total_transactions", func(e *jx.Encoder) { e.Int(o.TotalTransactions) })
		e.Field("avg_order_value", func(e *jx.Encoder) { encodeDecimal(e, o.AvgOrderValue) })
		e.Field("revenue_growth", func(e *jx.Encoder) { e.Float64(o.RevenueGrowth) })
		e.Field("order_growth", func(e *jx.Encoder) { e.Float64(o.OrderGrowth) })
		e.Field("transaction_growth", func(e *jx.Encoder) { e.Float64(o.TransactionGrowth) })
		e.Field("avg_order_growth", func(e *jx.Encoder) { e.Float64(o.AvgOrderGrowth) })
	})
}
