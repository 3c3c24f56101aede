// Package notify builds the alerts shown to the user.
package notify

import (
	"errors"

	carterrors "github.com/abgdnv/cartkeeper/internal/errors"
	"github.com/shopspring/decimal"
)

// Messages shown to the user.
const (
	MsgInvalidProduct = "Could not add the product to the cart"
	MsgEmptyCart      = "Your cart is empty!"
	MsgCheckoutPrefix = "Thank you for your purchase! Total: "
	MsgUnexpected     = "Something went wrong"
)

// Level tells a confirmation from a failure.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Alert is a blocking message the user has to dismiss.
type Alert struct {
	Level   Level
	Message string
}

// IsError reports whether the alert reports a failed action.
func (a Alert) IsError() bool {
	return a.Level == LevelError
}

// Notifier formats alerts and amounts for one currency.
type Notifier struct {
	symbol string
}

func NewNotifier(currencySymbol string) *Notifier {
	return &Notifier{symbol: currencySymbol}
}

// Amount formats d with two decimals behind the currency symbol, e.g. $19.98.
func (n *Notifier) Amount(d decimal.Decimal) string {
	return n.symbol + d.StringFixed(2)
}

// CheckoutSucceeded is shown after a successful checkout.
func (n *Notifier) CheckoutSucceeded(total decimal.Decimal) Alert {
	return Alert{Level: LevelInfo, Message: MsgCheckoutPrefix + n.Amount(total)}
}

// ForError maps a cart manager error to the alert reported to the user.
func (n *Notifier) ForError(err error) Alert {
	switch {
	case errors.Is(err, carterrors.ErrValidation):
		return Alert{Level: LevelError, Message: MsgInvalidProduct}
	case errors.Is(err, carterrors.ErrEmptyCart):
		return Alert{Level: LevelError, Message: MsgEmptyCart}
	default:
		return Alert{Level: LevelError, Message: MsgUnexpected}
	}
}
