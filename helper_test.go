package collateral

import (
	"context"
	"fmt"
	"math/big"
)

// stubOracle is a test PriceOracle with pinned rates, per-token failures,
// and a call log to observe the oracle call pattern.
type stubOracle struct {
	rates map[string]*big.Int
	fail  map[string]error
	calls []string
}

func newStubOracle() *stubOracle {
	return &stubOracle{
		rates: make(map[string]*big.Int),
		fail:  make(map[string]error),
	}
}

func (o *stubOracle) set(token string, rate int64) *stubOracle {
	o.rates[token] = big.NewInt(rate)
	return o
}

func (o *stubOracle) GetPrice(_ context.Context, token string) (*big.Int, error) {
	o.calls = append(o.calls, token)
	if err, ok := o.fail[token]; ok {
		return nil, err
	}
	rate, ok := o.rates[token]
	if !ok {
		return nil, fmt.Errorf("no rate for %q", token)
	}
	return new(big.Int).Set(rate), nil
}

// newTestSystem wires a ledger to a stub oracle, failing the test on error.
func newTestSystem(ledger *Ledger, oracle PriceOracle) *System {
	system, err := NewSystem(ledger, oracle, "USD")
	if err != nil {
		panic(err)
	}
	return system
}
