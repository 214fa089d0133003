package payments

import (
	"github.com/shopspring/decimal"
)

// Currency is fixed for every checkout session.
const Currency = "usd"

// CheckoutRequest describes the single line item a checkout session is
// created for.
type CheckoutRequest struct {
	Reference       string
	ApplicationID   string
	ScholarshipName string
	UniversityName  string
	Degree          string
	Amount          decimal.Decimal
	ProductImage    string
	CustomerName    string
	CustomerEmail   string
	SuccessURL      string
	CancelURL       string
	Metadata        map[string]interface{}
}

// CheckoutSession is what the provider hands back: a hosted page the client
// is redirected to.
type CheckoutSession struct {
	Reference   string `json:"reference"`
	PaymentURL  string `json:"url"`
	AmountMinor int64  `json:"amount"`
	Currency    string `json:"currency"`
}

// Gateway creates hosted checkout sessions with an external payment provider.
type Gateway interface {
	CreateCheckoutSession(req CheckoutRequest) (*CheckoutSession, error)
}

// MinorUnits converts a decimal amount in currency units to minor units,
// rounding halves away from zero: 49.99 -> 4999.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
