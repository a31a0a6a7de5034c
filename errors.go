package collateral

import "errors"

// The error taxonomy of the ledger. All failures are reported synchronously
// to the immediate caller and never retried internally; every failed mutation
// leaves the ledger state untouched.
var (
	// ErrInsufficientBalance reports a subtraction larger than the current
	// balance of the account or of the token total.
	ErrInsufficientBalance = errors.New("insufficient collateral balance")

	// ErrAmountOverflow reports an addition or an intermediate product that
	// would exceed the representable range of an amount.
	ErrAmountOverflow = errors.New("amount overflow")

	// ErrOracleUnavailable reports that the price oracle could not be
	// reached, or returned a zero or negative rate.
	ErrOracleUnavailable = errors.New("price oracle unavailable")

	// ErrInvalidAmount reports a nil or negative amount handed in by the
	// caller.
	ErrInvalidAmount = errors.New("invalid amount")
)
