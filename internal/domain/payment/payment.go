package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Method is the payment method of a settlement transaction.
type Method string

const (
	MethodTunai Method = "tunai"
	MethodDebit Method = "debit"
	MethodQRIS  Method = "qris"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodTunai, MethodDebit, MethodQRIS:
		return true
	}
	return false
}

// Transaction is a recorded payment event settling one order.
type Transaction struct {
	ID          string
	OrderID     int64
	UserID      int64
	CashierName string
	TableNo     string
	Date        time.Time // calendar date of the payment (DATE column)
	Amount      decimal.Decimal
	Received    decimal.Decimal
	Change      decimal.Decimal
	Method      Method
	CreatedAt   time.Time
}

// Repository defines persistence operations for transactions.
type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
}
