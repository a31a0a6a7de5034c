package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral/renderer"
)

type tokensCmd struct{}

func (*tokensCmd) Name() string     { return "tokens" }
func (*tokensCmd) Synopsis() string { return "list the registered tokens in enrollment order" }
func (*tokensCmd) Usage() string {
	return `cvl tokens

  Lists every token that ever received a deposit, in first-enrollment order.
  Tokens stay registered even when their balance returned to zero.
`
}

func (c *tokensCmd) SetFlags(f *flag.FlagSet) {}

func (c *tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading journal: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TokensMarkdown(ledger.Tokens()))
	return subcommands.ExitSuccess
}
