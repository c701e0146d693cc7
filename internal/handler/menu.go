package handler

import (
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/selerasa/restopos/internal/domain/menu"
)

// ListMenu returns the full menu catalog.
func (h *Handler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.menu.List(r.Context())
	if err != nil {
		h.internalError(w, r, "list menu", err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, item := range items {
				encodeMenuItem(e, item)
			}
		})
	})
}

// GetMenuItem returns a single menu item by ID.
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := h.menu.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			respondError(w, http.StatusNotFound, "menu item not found")
			return
		}
		h.internalError(w, r, "get menu item", err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeMenuItem(e, *item)
	})
}

// CreateMenuItem adds a dish to the catalog.
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := decodeMenuItem(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if item.Name == "" || item.Price.IsNegative() {
		respondError(w, http.StatusUnprocessableEntity, "name is required and price must not be negative")
		return
	}
	if item.Status == "" {
		item.Status = "tersedia"
	}
	if err := h.menu.Create(r.Context(), item); err != nil {
		h.internalError(w, r, "create menu item", err)
		return
	}
	respond(w, http.StatusCreated, func(e *jx.Encoder) {
		encodeMenuItem(e, *item)
	})
}

// UpdateMenuItem replaces the mutable fields of a menu item.
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	item, err := decodeMenuItem(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item.ID = id
	if err := h.menu.Update(r.Context(), item); err != nil {
		if errors.Is(err, menu.ErrNotFound) {
			respondError(w, http.StatusNotFound, "menu item not found")
			return
		}
		h.internalError(w, r, "update menu item", err)
		return
	}
	respond(w, http.StatusOK, func(e *jx.Encoder) {
		encodeMenuItem(e, *item)
	})
}

func decodeMenuItem(r *http.Request) (*menu.Item, error) {
	var item menu.Item
	err := decodeBody(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "name":
			v, err := d.Str()
			item.Name = v
			return err
		case "category":
			v, err := d.Str()
			item.Category = v
			return err
		case "price":
			v, err := decodeDecimal(d)
			item.Price = v
			return err
		case "status":
			v, err := d.Str()
			item.Status = v
			return err
		case "description":
			v, err := d.Str()
			item.Description = v
			return err
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func encodeMenuItem(e *jx.Encoder, item menu.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(item.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
		e.Field("category", func(e *jx.Encoder) { e.Str(item.Category) })
		e.Field("price", func(e *jx.Encoder) { encodeDecimal(e, item.Price) })
		e.Field("status", func(e *jx.Encoder) { e.Str(item.Status) })
		e.Field("description", func(e *jx.Encoder) { e.Str(item.Description) })
		e.Field("created_at", func(e *jx.Encoder) { encodeTime(e, item.CreatedAt) })
	})
}

// pathID parses the {id} path segment, responding 400 on garbage.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// internalError logs the error with request context and responds 500 without
// leaking details.
func (h *Handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	zctx.From(r.Context()).Error(op, zap.Error(err))
	respondError(w, http.StatusInternalServerError, "internal error")
}
