package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/selerasa/restopos/internal/domain/order"
)

// PlaceOrder accepts a new order for a table and returns it in the initial
// pending state.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req order.PlaceOrderRequest
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "table_no":
			v, err := d.Str()
			req.TableNo = v
			return err
		case "user_id":
			v, err := d.Int64()
			req.UserID = v
			return err
		case "note":
			v, err := d.Str()
			req.Note = v
			return err
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				var item order.ItemRequest
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					switch key {
					case "menu_item_id":
						v, err := d.Int64()
						item.MenuItemID = v
						return err
					case "quantity":
						v, err := d.Int()
						item.Quantity = v
						return err
					case "note":
						v, err := d.Str()
						item.Note = v
						return err
					default:
						return d.Skip()
					}
				}); err != nil {
					return err
				}
				req.Items = append(req.Items, item)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.PlaceOrder(r.Context(), req)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeOrder(e, *o)
	})
}

// GetOrder returns a single order with its line items.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrder(e, *o)
	})
}

// ListOrders returns orders filtered by the view query parameter:
// pending (default), awaiting-payment, or recent.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		list []order.Order
		err  error
	)
	switch view := r.URL.Query().Get("view"); view {
	case "", "pending":
		list, err = h.orders.ListPending(r.Context(), defaultListLimit)
	case "awaiting-payment":
		list, err = h.orders.ListAwaitingPayment(r.Context(), defaultListLimit)
	case "recent":
		list, err = h.orders.ListRecent(r.Context(), defaultListLimit)
	default:
		respondError(w, http.StatusBadRequest, "unknown view "+view)
		return
	}
	if err != nil {
		h.internalError(w, r, "list orders", err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrders(e, list)
	})
}

// UpdateOrderStatus advances an order through its status state machine.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var status order.Status
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "status":
			v, err := d.Str()
			status = order.Status(v)
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.orders.AdvanceStatus(r.Context(), id, status)
	if err != nil {
		h.mapOrderError(w, r, err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeOrder(e, *o)
	})
}

// mapOrderError converts order domain errors to HTTP error responses.
func (h *Handler) mapOrderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyItems):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, "order not found")
	default:
		var (
			iqErr *order.InvalidQuantityError
			nfErr *order.MenuItemNotFoundError
			itErr *order.InvalidTransitionError
		)
		switch {
		case errors.As(err, &iqErr):
			respondError(w, http.StatusUnprocessableEntity, iqErr.Error())
		case errors.As(err, &nfErr):
			respondError(w, http.StatusUnprocessableEntity, nfErr.Error())
		case errors.As(err, &itErr):
			respondError(w, http.StatusConflict, itErr.Error())
		default:
			h.internalError(w, r, "order operation", err)
		}
	}
}

func encodeOrders(e *jx.Encoder, list []order.Order) {
	e.Arr(func(e *jx.Encoder) {
		for _, o := range list {
			encodeOrder(e, o)
		}
	})
}

func encodeOrder(e *jx.Encoder, o order.Order) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(o.ID) })
		e.Field("table_no", func(e *jx.Encoder) { e.Str(o.TableNo) })
		e.Field("date", func(e *jx.Encoder) { e.Str(o.Date.Format("2006-01-02")) })
		e.Field("customer_name", func(e *jx.Encoder) { e.Str(o.CustomerName) })
		e.Field("note", func(e *jx.Encoder) { e.Str(o.Note) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(o.Status)) })
		e.Field("total", func(e *jx.Encoder) { encodeDecimal(e, o.Total) })
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range o.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("menu_item_id", func(e *jx.Encoder) { e.Int64(item.MenuItemID) })
						e.Field("menu_name", func(e *jx.Encoder) { e.Str(item.MenuName) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
						e.Field("unit_price", func(e *jx.Encoder) { encodeDecimal(e, item.UnitPrice) })
						e.Field("subtotal", func(e *jx.Encoder) { encodeDecimal(e, item.Subtotal) })
						e.Field("note", func(e *jx.Encoder) { e.Str(item.Note) })
					})
				}
			})
		})
		e.Field("created_at", func(e *jx.Encoder) { encodeTime(e, o.CreatedAt) })
	})
}
