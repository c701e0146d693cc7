// Package handler exposes the HTTP API: menu catalog, order lifecycle,
// payment settlement, on-demand reports, and per-role dashboard views.
package handler

import (
	"net/http"
	"time"

	"github.com/selerasa/restopos/internal/domain/menu"
	"github.com/selerasa/restopos/internal/domain/order"
	"github.com/selerasa/restopos/internal/domain/payment"
	"github.com/selerasa/restopos/internal/domain/report"
	"github.com/selerasa/restopos/internal/domain/user"
)

// Default limits for list endpoints.
const (
	defaultListLimit   = 20
	dashboardListLimit = 5
)

// Handler serves the HTTP API, delegating business logic to the domain
// services.
type Handler struct {
	menu     menu.Repository
	orders   *order.Service
	payments *payment.Service
	reports  *report.Aggregator
	poller   *report.Poller
	users    user.Repository
	now      func() time.Time
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(
	menuRepo menu.Repository,
	orders *order.Service,
	payments *payment.Service,
	reports *report.Aggregator,
	poller *report.Poller,
	users user.Repository,
) *Handler {
	return &Handler{
		menu:     menuRepo,
		orders:   orders,
		payments: payments,
		reports:  reports,
		poller:   poller,
		users:    users,
		now:      time.Now,
	}
}

// Routes registers all API routes on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu", h.ListMenu)
	mux.HandleFunc("POST /api/menu", h.CreateMenuItem)
	mux.HandleFunc("GET /api/menu/{id}", h.GetMenuItem)
	mux.HandleFunc("PUT /api/menu/{id}", h.UpdateMenuItem)

	mux.HandleFunc("POST /api/orders", h.PlaceOrder)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("PATCH /api/orders/{id}/status", h.UpdateOrderStatus)

	mux.HandleFunc("POST /api/payments", h.SettlePayment)

	mux.HandleFunc("GET /api/reports", h.GetReport)

	mux.HandleFunc("GET /api/dashboard/owner", h.OwnerDashboard)
	mux.HandleFunc("GET /api/dashboard/admin", h.AdminDashboard)
	mux.HandleFunc("GET /api/dashboard/kasir", h.KasirDashboard)
}
