package collateral

import (
	"context"
	"math/big"
)

// RateDecimals is the fixed-point scale of oracle rates: a rate is the price
// of one smallest token unit expressed in smallest common-value units,
// multiplied by 10^RateDecimals.
const RateDecimals = 8

// rateUnit is the price unit conversion constant, 10^RateDecimals. Every
// valuation divides by it exactly once, after the multiplication.
var rateUnit = new(big.Int).Exp(big.NewInt(10), big.NewInt(RateDecimals), nil)

// PriceOracle supplies the current exchange rate of a token into the common
// value unit. The ledger treats it as a synchronous, side-effect-free query:
// it never retries and imposes no timeout of its own, cancellation and
// deadlines travel through ctx from the caller.
//
// GetPrice returns the rate scaled by 10^RateDecimals. A rate that is nil,
// zero or negative is treated by the ledger as an unavailable oracle.
type PriceOracle interface {
	GetPrice(ctx context.Context, token string) (*big.Int, error)
}
