package collateral

import (
	"fmt"
	"math/big"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Value is an amount of the common value unit, the reference currency all
// collateral is aggregated into. Like Amount it is an integer in smallest
// units (e.g. cents) and immutable.
type Value struct {
	value *big.Int
}

// V creates a Value from an int64.
func V(v int64) Value { return Value{value: big.NewInt(v)} }

func (v Value) big() *big.Int {
	if v.value == nil {
		return new(big.Int)
	}
	return v.value
}

func (v Value) Add(w Value) Value  { return Value{value: new(big.Int).Add(v.big(), w.big())} }
func (v Value) Equal(w Value) bool { return v.big().Cmp(w.big()) == 0 }
func (v Value) IsZero() bool       { return v.big().Sign() == 0 }
func (v Value) String() string     { return v.big().String() }

// Decimal returns the value as an exact decimal in smallest units.
func (v Value) Decimal() decimal.Decimal { return decimal.NewFromBigInt(v.big(), 0) }

// Format renders the value in the given reporting currency, using the
// currency's own fraction and symbol.
func (v Value) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	return cur.Formatter().Format(v.big().Int64())
}

// MarshalJSON implements the json.Marshaler interface, values are plain
// JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(v.big().String()), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var a Amount
	if err := a.UnmarshalJSON(data); err != nil {
		return err
	}
	v.value = a.big()
	return nil
}

// ValidateCurrency checks that code is a known ISO currency usable as the
// reporting currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency code %q", code)
	}
	return nil
}
