package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"sync"

	"github.com/vaultd/collateral"
)

// Static is a fixed in-memory rate table. It is the oracle of choice for
// tests and for offline auditing of a journal at pinned rates.
type Static struct {
	mu    sync.RWMutex
	rates map[string]*big.Int
}

// Compile-time interface check
var _ collateral.PriceOracle = (*Static)(nil)

// NewStatic creates an empty rate table.
func NewStatic() *Static {
	return &Static{rates: make(map[string]*big.Int)}
}

// Set pins the rate for a token, scaled by 10^RateDecimals.
func (s *Static) Set(token string, rate *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rates[token] = new(big.Int).Set(rate)
}

// SetPrice pins the rate for a token from a human-readable price such as
// "2" or "0.03".
func (s *Static) SetPrice(token, price string) error {
	rate, err := ParseRate(price)
	if err != nil {
		return fmt.Errorf("rate for %q: %w", token, err)
	}
	s.Set(token, rate)
	return nil
}

// GetPrice implements collateral.PriceOracle. Tokens without a pinned rate
// are unavailable.
func (s *Static) GetPrice(_ context.Context, token string) (*big.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rate, ok := s.rates[token]
	if !ok {
		return nil, fmt.Errorf("no pinned rate for %q", token)
	}
	return new(big.Int).Set(rate), nil
}

// DecodeStatic reads a rate table from a JSON object mapping tokens to
// prices, e.g. {"TKA": "2.5", "TKB": "0.03"}.
func DecodeStatic(r io.Reader) (*Static, error) {
	var prices map[string]string
	if err := json.NewDecoder(r).Decode(&prices); err != nil {
		return nil, fmt.Errorf("cannot decode rate table: %w", err)
	}
	s := NewStatic()
	for token, price := range prices {
		if err := s.SetPrice(token, price); err != nil {
			return nil, err
		}
	}
	return s, nil
}
