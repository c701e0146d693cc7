package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// maxBodySize caps request bodies; every API payload is small.
const maxBodySize = 1 << 20

// respond writes a JSON response built with the given encoder callback.
func respond(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	e := &jx.Encoder{}
	encode(e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// respondError writes the standard error body {"code":..,"message":..}.
func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("code", func(e *jx.Encoder) { e.Int(status) })
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		})
	})
}

// decodeBody decodes a JSON object request body key by key. The callback is
// invoked once per top-level key; unknown keys should be skipped with d.Skip.
func decodeBody(r *http.Request, obj func(d *jx.Decoder, key string) error) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	d := jx.DecodeBytes(body)
	return d.Obj(obj)
}

// decodeDecimal reads a JSON number into a decimal without a float round trip.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromString(n.String())
}

func encodeDecimal(e *jx.Encoder, d decimal.Decimal) {
	// Money travels as a string to keep exact values out of float64 territory.
	e.Str(d.String())
}

func encodeTime(e *jx.Encoder, t time.Time) {
	e.Str(t.Format(time.RFC3339))
}
