package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral"
)

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct{}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "record a collateral deposit for an account" }
func (*depositCmd) Usage() string {
	return `cvl deposit <account> <token> <amount>

  Records a deposit of <amount> smallest units of <token> for <account>,
  appending it to the journal. The first deposit of a token registers it.

Usage Examples:
$ cvl deposit alice TKA 1000
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "deposit requires <account> <token> <amount>")
		return subcommands.ExitUsageError
	}
	account, token := f.Arg(0), f.Arg(1)
	amount, err := collateral.ParseAmount(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}
	// Apply to the replayed ledger first, so an invalid movement never
	// reaches the journal.
	if err := ledger.Add(account, token, amount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return EncodeMovement(newMovement(collateral.CmdDeposit, account, token, amount))
}
