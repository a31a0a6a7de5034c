// Package collateral provides the balance bookkeeping and valuation engine
// at the heart of a lending protocol's solvency tracking. It is designed to
// be embedded in a trusted orchestrating service and keeps strict numeric
// invariants under arbitrary sequences of deposits and withdrawals.
//
// The core functionalities include:
//   - Balance Bookkeeping: per-account, per-token collateral balances together
//     with system-wide totals, where the total for every token always equals
//     the sum of the account balances, after every single mutation.
//   - Token Registry: an ordered, append-only set of every token that ever
//     received a non-zero deposit, maintained automatically by the ledger.
//   - Valuation: conversion of raw token amounts into a common reference
//     currency using a live price oracle and exact fixed-point arithmetic;
//     no floating point is ever involved in a balance or valuation path.
//   - Journal Encoding: a human-readable JSONL format for collateral
//     movements, so a hosting service can persist and replay the ledger.
//
// This package serves as the foundational logic for the `cvl` command-line
// tool; access control, retry policy and storage belong to the caller.
package collateral
