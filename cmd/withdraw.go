package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral"
)

// withdrawCmd holds the flags for the 'withdraw' subcommand.
type withdrawCmd struct{}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a collateral withdrawal for an account" }
func (*withdrawCmd) Usage() string {
	return `cvl withdraw <account> <token> <amount>

  Records a withdrawal of <amount> smallest units of <token> for <account>,
  appending it to the journal. A withdrawal exceeding the account's balance
  is rejected and nothing is written.

Usage Examples:
$ cvl withdraw alice TKA 200
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "withdraw requires <account> <token> <amount>")
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
	if err := ledger.Sub(account, token, amount); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	return EncodeMovement(newMovement(collateral.CmdWithdraw, account, token, amount))
}
