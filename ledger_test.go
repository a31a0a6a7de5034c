package collateral

import (
	"errors"
	"math/big"
	"sync"
	"testing"
)

// checkConservation verifies that for every registered token the total
// balance equals the sum of the token's balance across all accounts.
func checkConservation(t *testing.T, l *Ledger) {
	t.Helper()
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, token := range l.tokens {
		sum := new(big.Int)
		for _, column := range l.balances {
			if v, ok := column[token]; ok {
				sum.Add(sum, v)
			}
		}
		if sum.Cmp(l.total(token)) != 0 {
			t.Errorf("token %q: sum of account balances is %s, total is %s", token, sum, l.total(token))
		}
	}
}

func TestLedger_AddSub(t *testing.T) {
	ledger := NewLedger()

	// alice deposits 500, bob deposits 300, alice withdraws 200.
	if err := ledger.Add("alice", "TOKEN-X", A(500)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := ledger.Add("bob", "TOKEN-X", A(300)); err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if err := ledger.Sub("alice", "TOKEN-X", A(200)); err != nil {
		t.Fatalf("Sub() failed: %v", err)
	}

	if got := ledger.Balance("alice", "TOKEN-X"); !got.Equal(A(300)) {
		t.Errorf("Balance(alice) = %s, want 300", got)
	}
	if got := ledger.Balance("bob", "TOKEN-X"); !got.Equal(A(300)) {
		t.Errorf("Balance(bob) = %s, want 300", got)
	}
	if got := ledger.Total("TOKEN-X"); !got.Equal(A(600)) {
		t.Errorf("Total() = %s, want 600", got)
	}
	checkConservation(t, ledger)
}

func TestLedger_UnknownReadsAreZero(t *testing.T) {
	ledger := NewLedger()
	if got := ledger.Balance("nobody", "TOKEN-X"); !got.IsZero() {
		t.Errorf("Balance() on empty ledger = %s, want 0", got)
	}
	if got := ledger.Total("TOKEN-X"); !got.IsZero() {
		t.Errorf("Total() on empty ledger = %s, want 0", got)
	}
	if got := ledger.TokenCount(); got != 0 {
		t.Errorf("TokenCount() on empty ledger = %d, want 0", got)
	}
}

func TestLedger_SubInsufficient(t *testing.T) {
	testCases := []struct {
		name    string
		setup   func(l *Ledger)
		account string
		amount  Amount
	}{
		{
			name:    "from an account that never deposited",
			setup:   func(l *Ledger) {},
			account: "alice",
			amount:  A(1),
		},
		{
			name: "more than the account holds",
			setup: func(l *Ledger) {
				l.Add("alice", "TOKEN-X", A(100))
			},
			account: "alice",
			amount:  A(101),
		},
		{
			name: "from the wrong account",
			setup: func(l *Ledger) {
				l.Add("alice", "TOKEN-X", A(100))
			},
			account: "bob",
			amount:  A(100),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := NewLedger()
			tc.setup(ledger)
			before := ledger.Balance(tc.account, "TOKEN-X")
			beforeTotal := ledger.Total("TOKEN-X")

			err := ledger.Sub(tc.account, "TOKEN-X", tc.amount)
			if !errors.Is(err, ErrInsufficientBalance) {
				t.Fatalf("Sub() error = %v, want ErrInsufficientBalance", err)
			}

			// a failed withdrawal must leave both balances untouched.
			if got := ledger.Balance(tc.account, "TOKEN-X"); !got.Equal(before) {
				t.Errorf("Balance() after failed Sub = %s, want %s", got, before)
			}
			if got := ledger.Total("TOKEN-X"); !got.Equal(beforeTotal) {
				t.Errorf("Total() after failed Sub = %s, want %s", got, beforeTotal)
			}
			checkConservation(t, ledger)
		})
	}
}

func TestLedger_NegativeAmounts(t *testing.T) {
	ledger := NewLedger()
	neg := Amount{value: big.NewInt(-5)}

	if err := ledger.Add("alice", "TOKEN-X", neg); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Add(-5) error = %v, want ErrInvalidAmount", err)
	}
	if err := ledger.Sub("alice", "TOKEN-X", neg); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Sub(-5) error = %v, want ErrInvalidAmount", err)
	}
	if got := ledger.TokenCount(); got != 0 {
		t.Errorf("TokenCount() after rejected mutations = %d, want 0", got)
	}
}

func TestLedger_ZeroAddDoesNotEnroll(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Add("alice", "TOKEN-X", A(0)); err != nil {
		t.Fatalf("Add(0) failed: %v", err)
	}
	if got := ledger.TokenCount(); got != 0 {
		t.Errorf("TokenCount() after zero credit = %d, want 0", got)
	}
	if got := len(ledger.Tokens()); got != 0 {
		t.Errorf("Tokens() after zero credit has %d entries, want 0", got)
	}
}

func TestLedger_AddOverflow(t *testing.T) {
	ledger := NewLedger()
	max := NewAmount(maxAmount)
	if err := ledger.Add("alice", "TOKEN-X", max); err != nil {
		t.Fatalf("Add(max) failed: %v", err)
	}
	// one more unit anywhere pushes the total past the cap.
	err := ledger.Add("bob", "TOKEN-X", A(1))
	if !errors.Is(err, ErrAmountOverflow) {
		t.Fatalf("Add() past the cap error = %v, want ErrAmountOverflow", err)
	}
	if got := ledger.Balance("bob", "TOKEN-X"); !got.IsZero() {
		t.Errorf("Balance(bob) after failed Add = %s, want 0", got)
	}
	if got := ledger.Total("TOKEN-X"); !got.Equal(max) {
		t.Errorf("Total() after failed Add = %s, want %s", got, max)
	}
	checkConservation(t, ledger)
}

func TestLedger_TokenRegistry(t *testing.T) {
	ledger := NewLedger()
	ledger.Add("alice", "GOLD", A(10))
	ledger.Add("alice", "SILVER", A(20))
	ledger.Add("bob", "GOLD", A(30)) // already enrolled, order unchanged
	ledger.Add("bob", "COPPER", A(40))

	want := []string{"GOLD", "SILVER", "COPPER"}
	got := ledger.Tokens()
	if len(got) != len(want) {
		t.Fatalf("Tokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tokens()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := ledger.TokenCount(); got != 3 {
		t.Errorf("TokenCount() = %d, want 3", got)
	}
}

func TestLedger_RegistrySurvivesZeroBalance(t *testing.T) {
	ledger := NewLedger()
	ledger.Add("alice", "GOLD", A(10))
	if err := ledger.Sub("alice", "GOLD", A(10)); err != nil {
		t.Fatalf("Sub() failed: %v", err)
	}

	if got := ledger.Total("GOLD"); !got.IsZero() {
		t.Fatalf("Total() = %s, want 0", got)
	}
	// draining a token does not unregister it.
	if got := ledger.TokenCount(); got != 1 {
		t.Errorf("TokenCount() after draining = %d, want 1", got)
	}
	if tokens := ledger.Tokens(); len(tokens) != 1 || tokens[0] != "GOLD" {
		t.Errorf("Tokens() after draining = %v, want [GOLD]", tokens)
	}
}

func TestLedger_TokensReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	ledger.Add("alice", "GOLD", A(1))
	tokens := ledger.Tokens()
	tokens[0] = "MUTATED"
	if got := ledger.Tokens(); got[0] != "GOLD" {
		t.Errorf("Tokens() exposed internal state, got %v", got)
	}
}

func TestLedger_ConcurrentMutations(t *testing.T) {
	ledger := NewLedger()
	ledger.Add("alice", "GOLD", A(10_000))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := ledger.Add("alice", "GOLD", A(3)); err != nil {
					t.Errorf("Add() failed: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := ledger.Sub("alice", "GOLD", A(2)); err != nil {
					t.Errorf("Sub() failed: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// 10000 + 10*100*3 - 10*100*2 = 11000
	if got := ledger.Balance("alice", "GOLD"); !got.Equal(A(11_000)) {
		t.Errorf("Balance() = %s, want 11000", got)
	}
	checkConservation(t, ledger)
}

func TestLedger_MultiTokenConservation(t *testing.T) {
	ledger := NewLedger()
	ops := []struct {
		account string
		token   string
		amount  int64
		sub     bool
	}{
		{"alice", "GOLD", 1000, false},
		{"bob", "GOLD", 250, false},
		{"alice", "SILVER", 9999, false},
		{"alice", "GOLD", 300, true},
		{"carol", "SILVER", 1, false},
		{"bob", "GOLD", 250, true},
	}
	for _, op := range ops {
		var err error
		if op.sub {
			err = ledger.Sub(op.account, op.token, A(op.amount))
		} else {
			err = ledger.Add(op.account, op.token, A(op.amount))
		}
		if err != nil {
			t.Fatalf("op %+v failed: %v", op, err)
		}
		checkConservation(t, ledger)
	}

	if got := ledger.Total("GOLD"); !got.Equal(A(700)) {
		t.Errorf("Total(GOLD) = %s, want 700", got)
	}
	if got := ledger.Total("SILVER"); !got.Equal(A(10000)) {
		t.Errorf("Total(SILVER) = %s, want 10000", got)
	}
}
