package collateral

import (
	"fmt"
	"math/big"
	"sync"
)

// Ledger owns all collateral balance state and the token registry.
//
// Balances exist at two levels that are kept consistent at all times: for
// every token, the total balance equals the sum of that token's balance
// across all accounts. Reading an account or token that was never credited
// yields zero, mirroring the implicit zero-initialized storage of the
// reference system.
//
// A Ledger is safe for concurrent use. Mutations are serialized under a
// single write lock so no interleaving can expose a torn state; queries take
// a read lock or copy a consistent snapshot before iterating.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]map[string]*big.Int // account -> token -> amount
	totals   map[string]*big.Int            // token -> sum over all accounts
	tokens   []string                       // registry, in first-enrollment order
	index    map[string]struct{}            // presence index over tokens
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]map[string]*big.Int),
		totals:   make(map[string]*big.Int),
		tokens:   make([]string, 0),
		index:    make(map[string]struct{}),
	}
}

// Add credits amount of token to account, and the same amount to the token
// total. The first non-zero credit of a token enrolls it in the registry.
//
// Add is atomic: on ErrInvalidAmount or ErrAmountOverflow the ledger is left
// unchanged.
func (l *Ledger) Add(account, token string, amount Amount) error {
	if amount.IsNegative() {
		return fmt.Errorf("add %s of %q to %q: %w", amount, token, account, ErrInvalidAmount)
	}
	if amount.IsZero() {
		// a zero credit neither moves balances nor enrolls the token.
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	total := new(big.Int).Add(l.total(token), amount.big())
	// the account balance is bounded by the total, checking the total covers both.
	if total.Cmp(maxAmount) > 0 {
		return fmt.Errorf("add %s of %q to %q: %w", amount, token, account, ErrAmountOverflow)
	}
	balance := new(big.Int).Add(l.balance(account, token), amount.big())

	l.setBalance(account, token, balance)
	l.totals[token] = total
	l.enroll(token)
	return nil
}

// Sub debits amount of token from account, and the same amount from the
// token total. It fails with ErrInsufficientBalance when amount exceeds the
// current balance of the account or of the total; the operation is atomic,
// on failure neither balance changes. The token stays registered even when
// its balance returns to zero.
func (l *Ledger) Sub(account, token string, amount Amount) error {
	if amount.IsNegative() {
		return fmt.Errorf("subtract %s of %q from %q: %w", amount, token, account, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance := l.balance(account, token)
	if balance.Cmp(amount.big()) < 0 {
		return fmt.Errorf("subtract %s of %q from %q (balance %s): %w",
			amount, token, account, balance, ErrInsufficientBalance)
	}
	total := l.total(token)
	if total.Cmp(amount.big()) < 0 {
		return fmt.Errorf("subtract %s of %q from total (balance %s): %w",
			amount, token, total, ErrInsufficientBalance)
	}

	l.setBalance(account, token, new(big.Int).Sub(balance, amount.big()))
	l.totals[token] = new(big.Int).Sub(total, amount.big())
	return nil
}

// Balance returns the raw amount of token held by account, zero when the
// pair was never credited.
func (l *Ledger) Balance(account, token string) Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return NewAmount(l.balance(account, token))
}

// Total returns the raw amount of token held across all accounts.
func (l *Ledger) Total(token string) Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return NewAmount(l.total(token))
}

// Tokens returns the registered tokens in first-enrollment order.
func (l *Ledger) Tokens() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tokens := make([]string, len(l.tokens))
	copy(tokens, l.tokens)
	return tokens
}

// TokenCount returns the number of registered tokens.
func (l *Ledger) TokenCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.tokens)
}

// --- private helpers, callers hold the appropriate lock ---

// balance reads the current account balance, zero when absent. The returned
// integer must not be mutated.
func (l *Ledger) balance(account, token string) *big.Int {
	if v, ok := l.balances[account][token]; ok {
		return v
	}
	return new(big.Int)
}

// total reads the current token total, zero when absent. The returned
// integer must not be mutated.
func (l *Ledger) total(token string) *big.Int {
	if v, ok := l.totals[token]; ok {
		return v
	}
	return new(big.Int)
}

func (l *Ledger) setBalance(account, token string, v *big.Int) {
	column, ok := l.balances[account]
	if !ok {
		column = make(map[string]*big.Int)
		l.balances[account] = column
	}
	column[token] = v
}

// enroll appends token to the registry if absent, preserving insertion
// order. Enrollment is idempotent and tokens are never removed.
func (l *Ledger) enroll(token string) {
	if _, ok := l.index[token]; ok {
		return
	}
	l.index[token] = struct{}{}
	l.tokens = append(l.tokens, token)
}

// snapshotTotals copies the registry and the token totals under the read
// lock, so valuation can iterate and call the oracle without holding any
// lock.
func (l *Ledger) snapshotTotals() ([]string, map[string]*big.Int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tokens := make([]string, len(l.tokens))
	copy(tokens, l.tokens)
	totals := make(map[string]*big.Int, len(l.totals))
	for token, v := range l.totals {
		totals[token] = new(big.Int).Set(v)
	}
	return tokens, totals
}

// snapshotAccount copies the registry and one account's balances under the
// read lock.
func (l *Ledger) snapshotAccount(account string) ([]string, map[string]*big.Int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tokens := make([]string, len(l.tokens))
	copy(tokens, l.tokens)
	balances := make(map[string]*big.Int, len(l.balances[account]))
	for token, v := range l.balances[account] {
		balances[token] = new(big.Int).Set(v)
	}
	return tokens, balances
}
