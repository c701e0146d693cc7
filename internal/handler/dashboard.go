package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/selerasa/restopos/internal/domain/report"
	"github.com/selerasa/restopos/internal/domain/user"
)

// OwnerDashboard serves the rolling seven-day overview from the background
// poller. It never blocks on the database: the latest snapshot is returned
// as-is, with a stale marker when the most recent refresh failed.
func (h *Handler) OwnerDashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.poller.Snapshot()
	if snap.Report == nil {
		respondError(w, http.StatusServiceUnavailable, "report not ready yet")
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("report", func(e *jx.Encoder) { encodeReport(e, snap.Report) })
			e.Field("refreshed_at", func(e *jx.Encoder) { encodeTime(e, snap.RefreshedAt) })
			e.Field("stale", func(e *jx.Encoder) { e.Bool(snap.Stale) })
		})
	})
}

// AdminDashboard serves today's numbers with growth against yesterday, staff
// and registration counts, and the most recent orders.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()
	today := report.DateOf(now)

	rep, err := h.reports.Build(ctx, report.SingleDay(today), report.Options{FullDay: true})
	if err != nil {
		h.internalError(w, r, "build admin dashboard report", err)
		return
	}

	totalUsers, err := h.users.Count(ctx)
	if err != nil {
		h.internalError(w, r, "count users", err)
		return
	}
	totalCustomers, err := h.users.CountByRole(ctx, user.RolePelanggan)
	if err != nil {
		h.internalError(w, r, "count customers", err)
		return
	}
	newToday, err := h.users.CountCreatedOn(ctx, now)
	if err != nil {
		h.internalError(w, r, "count registrations", err)
		return
	}

	recent, err := h.orders.ListRecent(ctx, dashboardListLimit)
	if err != nil {
		h.internalError(w, r, "list recent orders", err)
		return
	}

	respond(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("overview", func(e *jx.Encoder) { encodeOverview(e, rep.Overview) })
			e.Field("orders_by_status", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("pending", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Pending) })
					e.Field("proses", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Proses) })
					e.Field("selesai", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Selesai) })
					e.Field("dibatalkan", func(e *jx.Encoder) { e.Int(rep.OrdersByStatus.Dibatalkan) })
				})
			})
			e.Field("users", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("total", func(e *jx.Encoder) { e.Int(totalUsers) })
					e.Field("customers", func(e *jx.Encoder) { e.Int(totalCustomers) })
					e.Field("registered_today", func(e *jx.Encoder) { e.Int(newToday) })
				})
			})
			e.Field("recent_orders", func(e *jx.Encoder) { encodeOrders(e, recent) })
		})
	})
}

// KasirDashboard serves the cashier view: today's totals and the orders that
// still need settlement.
func (h *Handler) KasirDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := report.DateOf(h.now())

	rep, err := h.reports.Build(ctx, report.SingleDay(today), report.Options{
		FullDay:             true,
		IncludeTransactions: true,
	})
	if err != nil {
		h.internalError(w, r, "build kasir dashboard report", err)
		return
	}

	awaiting, err := h.orders.ListAwaitingPayment(ctx, defaultListLimit)
	if err != nil {
		h.internalError(w, r, "list awaiting-payment orders", err)
		return
	}

	respond(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("overview", func(e *jx.Encoder) { encodeOverview(e, rep.Overview) })
			e.Field("payment_methods", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("tunai", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.Tunai) })
					e.Field("debit", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.Debit) })
					e.Field("qris", func(e *jx.Encoder) { e.Int(rep.PaymentMethods.QRIS) })
				})
			})
			e.Field("awaiting_payment", func(e *jx.Encoder) { encodeOrders(e, awaiting) })
		})
	})
}
