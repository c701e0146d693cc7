package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/selerasa/restopos/internal/domain/order"
	"github.com/selerasa/restopos/internal/domain/payment"
)

// SettlePayment records the payment for an order and completes it.
func (h *Handler) SettlePayment(w http.ResponseWriter, r *http.Request) {
	var req payment.SettleRequest
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "order_id":
			v, err := d.Int64()
			req.OrderID = v
			return err
		case "user_id":
			v, err := d.Int64()
			req.UserID = v
			return err
		case "method":
			v, err := d.Str()
			req.Method = payment.Method(v)
			return err
		case "received":
			v, err := decodeDecimal(d)
			req.Received = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.payments.Settle(r.Context(), req)
	if err != nil {
		h.mapPaymentError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeTransaction(e, *tx)
	})
}

// mapPaymentError converts payment domain errors to HTTP error responses.
func (h *Handler) mapPaymentError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, payment.ErrUnknownMethod):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, order.ErrNotFound):
		respondError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, payment.ErrOrderNotPayable):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, payment.ErrInsufficientAmount):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.internalError(w, r, "settle payment", err)
	}
}

func encodeTransaction(e *jx.Encoder, tx payment.Transaction) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(tx.ID) })
		e.Field("order_id", func(e *jx.Encoder) { e.Int64(tx.OrderID) })
		e.Field("table_no", func(e *jx.Encoder) { e.Str(tx.TableNo) })
		e.Field("date", func(e *jx.Encoder) { e.Str(tx.Date.Format("2006-01-02")) })
		e.Field("amount", func(e *jx.Encoder) { encodeDecimal(e, tx.Amount) })
		e.Field("received", func(e *jx.Encoder) { encodeDecimal(e, tx.Received) })
		e.Field("change", func(e *jx.Encoder) { encodeDecimal(e, tx.Change) })
		e.Field("method", func(e *jx.Encoder) { e.Str(string(tx.Method)) })
		e.Field("created_at", func(e *jx.Encoder) { encodeTime(e, tx.CreatedAt) })
	})
}
