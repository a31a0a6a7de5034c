package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral/renderer"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct {
	currency string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display the system-wide collateral valuation" }
func (*balancesCmd) Usage() string {
	return `cvl balances [-c <currency>]

  Prices every registered token's total balance with the oracle and displays
  the grand total in the reporting currency. Any token the oracle cannot
  price fails the whole report.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Reporting currency for collateral values")
}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	system, err := NewSystem(c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating valuation system: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := system.NewBalanceReport(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating balance report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.BalancesMarkdown(report))
	return subcommands.ExitSuccess
}
