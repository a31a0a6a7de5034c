package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral"
)

// valueCmd holds the flags for the 'value' subcommand.
type valueCmd struct {
	currency string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "price a token amount in the reporting currency" }
func (*valueCmd) Usage() string {
	return `cvl value [-c <currency>] <token> <amount>

  Asks the oracle for the token's current rate and prices the given amount,
  without touching any balance.

Usage Examples:
$ cvl value TKA 1000
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "USD", "Reporting currency for collateral values")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "value requires <token> <amount>")
		return subcommands.ExitUsageError
	}
	token := f.Arg(0)
	amount, err := collateral.ParseAmount(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	system, err := NewSystem(c.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating valuation system: %v\n", err)
		return subcommands.ExitFailure
	}

	value, err := system.TokenValue(ctx, token, amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pricing %s %s: %v\n", amount, token, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %s = %s\n", amount, token, value.Format(c.currency))
	return subcommands.ExitSuccess
}
