package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/vaultd/collateral"
)

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when the terminal renderer cannot be built.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(md)
}

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and formats the journal file into a canonical form"
}
func (*fmtCmd) Usage() string {
	return `cvl fmt

  Validates and formats the journal file. This command reads all movements,
  replays them to check every balance invariant, and writes them back in a
  canonical JSONL format.
`
}

func (p *fmtCmd) SetFlags(f *flag.FlagSet) {}

func (p *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := os.Open(*ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open journal %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	movements, err := collateral.DecodeJournal(in)
	in.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not decode journal %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	// replaying proves the journal is consistent before rewriting it.
	if err := collateral.NewLedger().Replay(movements); err != nil {
		fmt.Fprintf(os.Stderr, "Error: journal %q is inconsistent: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	out, err := os.CreateTemp(".", "journal-*.jsonl")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not create temporary journal: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, m := range movements {
		if err := collateral.EncodeMovement(out, m); err != nil {
			fmt.Fprintf(os.Stderr, "Error: could not write movement: %v\n", err)
			out.Close()
			os.Remove(out.Name())
			return subcommands.ExitFailure
		}
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not close temporary journal: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.Rename(out.Name(), *ledgerFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not replace journal %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(os.Stderr, "Successfully formatted %d movement(s) in %s\n", len(movements), *ledgerFile)
	return subcommands.ExitSuccess
}
