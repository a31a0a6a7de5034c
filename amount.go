package collateral

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// maxAmount bounds every balance and value held by the ledger to 256 bits,
// the register width of the contract platforms this ledger mirrors.
var maxAmount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// Amount is a token amount denominated in the token's native smallest unit.
// It is immutable, all operations return a new value. The zero Amount is a
// valid zero.
type Amount struct {
	value *big.Int
}

// A creates an Amount from an int64, a convenient factory for tests and
// small literals.
func A(v int64) Amount { return Amount{value: big.NewInt(v)} }

// NewAmount creates an Amount from a big.Int. The input is copied, later
// mutations of v do not affect the returned Amount. A nil v is zero.
func NewAmount(v *big.Int) Amount {
	if v == nil {
		return Amount{}
	}
	return Amount{value: new(big.Int).Set(v)}
}

// ParseAmount parses a non-negative integer amount in smallest units.
// Fractional or negative inputs are rejected, there is no implicit scaling.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("cannot parse amount %q: %w", s, err)
	}
	if !d.IsInteger() {
		return Amount{}, fmt.Errorf("amount %q is not in smallest units: %w", s, ErrInvalidAmount)
	}
	if d.IsNegative() {
		return Amount{}, fmt.Errorf("amount %q is negative: %w", s, ErrInvalidAmount)
	}
	return Amount{value: d.BigInt()}, nil
}

// big returns the underlying integer, never nil. Callers must not mutate it.
func (a Amount) big() *big.Int {
	if a.value == nil {
		return new(big.Int)
	}
	return a.value
}

func (a Amount) Add(b Amount) Amount { return Amount{value: new(big.Int).Add(a.big(), b.big())} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: new(big.Int).Sub(a.big(), b.big())} }
func (a Amount) Equal(b Amount) bool { return a.big().Cmp(b.big()) == 0 }
func (a Amount) LessThan(b Amount) bool { return a.big().Cmp(b.big()) < 0 }
func (a Amount) IsZero() bool        { return a.big().Sign() == 0 }
func (a Amount) IsNegative() bool    { return a.big().Sign() < 0 }
func (a Amount) IsPositive() bool    { return a.big().Sign() > 0 }
func (a Amount) String() string      { return a.big().String() }

// Decimal returns the amount as an exact decimal, for display purposes.
func (a Amount) Decimal() decimal.Decimal { return decimal.NewFromBigInt(a.big(), 0) }

// MarshalJSON implements the json.Marshaler interface, amounts are plain
// JSON numbers.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.big().String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if !d.IsInteger() {
		return fmt.Errorf("amount %s is not in smallest units: %w", d, ErrInvalidAmount)
	}
	a.value = d.BigInt()
	return nil
}
