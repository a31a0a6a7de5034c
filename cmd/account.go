package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral/renderer"
)

// accountCmd holds the flags for the 'account' subcommand.
type accountCmd struct {
	currency string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "display one account's collateral valuation" }
func (*accountCmd) Usage() string {
	return `cvl account [-c <currency>] <account>

  Prices the tokens the account actually holds and displays the account's
  collateral value in the reporting currency.
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Reporting currency for collateral values")
}

func (c *accountCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "account requires <account>")
		return subcommands.ExitUsageError
	}

	system, err := NewSystem(c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating valuation system: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := system.NewAccountReport(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating account report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.AccountMarkdown(report))
	return subcommands.ExitSuccess
}
