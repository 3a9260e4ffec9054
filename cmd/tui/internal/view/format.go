package view

import (
	"context"
	"fmt"
	"time"

	"github.com/rechesh-io/rechesh/internal/purchase"
)

const dbTimeout = 5 * time.Second

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatDatePtr renders optional dates, empty when unset.
func FormatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}

	return FormatDate(*t)
}

// FormatMoney renders a cost amount with its currency code.
func FormatMoney(amount float64, currency purchase.Currency) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
