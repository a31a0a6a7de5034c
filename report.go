package collateral

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceReport represents a detailed view of system-wide collateral at the
// moment of the query.
type BalanceReport struct {
	ReportingCurrency string
	Holdings          []TokenHolding
	TotalValue        Value
}

// AccountReport represents a detailed view of one account's collateral.
type AccountReport struct {
	Account           string
	ReportingCurrency string
	Holdings          []TokenHolding
	TotalValue        Value
}

// TokenHolding is one row of a report: the raw balance of a token, the rate
// used and the resulting value in the reporting currency.
type TokenHolding struct {
	Token  string
	Amount Amount
	Rate   decimal.Decimal // in common value units per smallest token unit
	Value  Value
}

// NewBalanceReport prices every registered token's total balance, in
// registration order, with a single consistent ledger snapshot and one
// oracle call per token.
func (s *System) NewBalanceReport(ctx context.Context) (*BalanceReport, error) {
	tokens, totals := s.Ledger.snapshotTotals()
	report := &BalanceReport{ReportingCurrency: s.ReportingCurrency}
	for _, token := range tokens {
		holding, err := s.newHolding(ctx, token, NewAmount(totals[token]))
		if err != nil {
			return nil, err
		}
		report.Holdings = append(report.Holdings, holding)
		report.TotalValue = report.TotalValue.Add(holding.Value)
	}
	return report, nil
}

// NewAccountReport prices one account's holdings; only tokens with a
// strictly positive balance appear.
func (s *System) NewAccountReport(ctx context.Context, account string) (*AccountReport, error) {
	tokens, balances := s.Ledger.snapshotAccount(account)
	report := &AccountReport{Account: account, ReportingCurrency: s.ReportingCurrency}
	for _, token := range tokens {
		balance := balances[token]
		if balance == nil || balance.Sign() <= 0 {
			continue
		}
		holding, err := s.newHolding(ctx, token, NewAmount(balance))
		if err != nil {
			return nil, err
		}
		report.Holdings = append(report.Holdings, holding)
		report.TotalValue = report.TotalValue.Add(holding.Value)
	}
	return report, nil
}

func (s *System) newHolding(ctx context.Context, token string, amount Amount) (TokenHolding, error) {
	rate, err := s.rate(ctx, token)
	if err != nil {
		return TokenHolding{}, err
	}
	value, err := tokenValue(token, amount, rate)
	if err != nil {
		return TokenHolding{}, err
	}
	return TokenHolding{
		Token:  token,
		Amount: amount,
		Rate:   decimal.NewFromBigInt(rate, -RateDecimals),
		Value:  value,
	}, nil
}
