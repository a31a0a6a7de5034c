package collateral

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// System combines the ledger with the price oracle and a reporting currency.
// It serves as the central point of access for valuation queries, so that
// every query prices balances with one consistent snapshot of the ledger.
//
// The ledger itself never talks to the oracle: all oracle lookups happen
// here, outside any ledger lock, so a slow oracle call can never block a
// mutation.
type System struct {
	Ledger            *Ledger
	Oracle            PriceOracle
	ReportingCurrency string
}

// NewSystem creates a valuation system from a ledger and a price oracle.
func NewSystem(ledger *Ledger, oracle PriceOracle, reportingCurrency string) (*System, error) {
	if reportingCurrency != "" {
		if err := ValidateCurrency(reportingCurrency); err != nil {
			return nil, fmt.Errorf("invalid reporting currency: %w", err)
		}
	}
	return &System{
		Ledger:            ledger,
		Oracle:            oracle,
		ReportingCurrency: reportingCurrency,
	}, nil
}

// TokenValue prices amount of token in the common value unit, computing
// amount * rate / 10^RateDecimals with truncation toward zero. The full
// product is formed before the division, so no precision is lost and no
// intermediate can silently overflow.
func (s *System) TokenValue(ctx context.Context, token string, amount Amount) (Value, error) {
	rate, err := s.rate(ctx, token)
	if err != nil {
		return Value{}, err
	}
	return tokenValue(token, amount, rate)
}

// TotalValue prices the whole ledger: it iterates every registered token in
// registration order and sums the value of its total balance. Tokens with a
// zero total are still priced, preserving the oracle call pattern of the
// reference system. Any oracle failure fails the whole query.
func (s *System) TotalValue(ctx context.Context) (Value, error) {
	tokens, totals := s.Ledger.snapshotTotals()
	total := Value{}
	for _, token := range tokens {
		v, err := s.TokenValue(ctx, token, NewAmount(totals[token]))
		if err != nil {
			return Value{}, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// AccountValue prices one account's collateral: same iteration as
// TotalValue, but only tokens the account actually holds contribute, and
// only those are priced.
func (s *System) AccountValue(ctx context.Context, account string) (Value, error) {
	tokens, balances := s.Ledger.snapshotAccount(account)
	total := Value{}
	for _, token := range tokens {
		balance := balances[token]
		if balance == nil || balance.Sign() <= 0 {
			continue
		}
		v, err := s.TokenValue(ctx, token, NewAmount(balance))
		if err != nil {
			return Value{}, err
		}
		total = total.Add(v)
	}
	return total, nil
}

// rate queries the oracle once and validates the result. Unreachable oracle
// and invalid rates both surface as ErrOracleUnavailable, never as a
// misleading zero value.
func (s *System) rate(ctx context.Context, token string) (*big.Int, error) {
	if s.Oracle == nil {
		return nil, fmt.Errorf("rate for %q: no oracle configured: %w", token, ErrOracleUnavailable)
	}
	rate, err := s.Oracle.GetPrice(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("rate for %q: %w", token, errors.Join(ErrOracleUnavailable, err))
	}
	if rate == nil || rate.Sign() <= 0 {
		return nil, fmt.Errorf("rate for %q is %v: %w", token, rate, ErrOracleUnavailable)
	}
	return rate, nil
}

// tokenValue is the valuation kernel: multiply first, divide once, truncate
// toward zero.
func tokenValue(token string, amount Amount, rate *big.Int) (Value, error) {
	if amount.IsNegative() {
		return Value{}, fmt.Errorf("value of %s %q: %w", amount, token, ErrInvalidAmount)
	}
	v := new(big.Int).Mul(amount.big(), rate)
	v.Quo(v, rateUnit)
	if v.Cmp(maxAmount) > 0 {
		return Value{}, fmt.Errorf("value of %s %q: %w", amount, token, ErrAmountOverflow)
	}
	return Value{value: v}, nil
}
