package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/vaultd/collateral/cmd"
)

// completion describes the shell completion of the cvl binary.
var completion = &complete.Command{
	Sub: map[string]*complete.Command{
		"deposit":  {},
		"withdraw": {},
		"fmt":      {},
		"balances": {Flags: map[string]complete.Predictor{"c": predict.Nothing}},
		"account":  {Flags: map[string]complete.Predictor{"c": predict.Nothing}},
		"value":    {Flags: map[string]complete.Predictor{"c": predict.Nothing}},
		"tokens":   {},
		"assist":   {Flags: map[string]complete.Predictor{"c": predict.Nothing}},
	},
	Flags: map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"rates":       predict.Files("*.json"),
		"oracle-url":  predict.Nothing,
		"oracle-path": predict.Nothing,
	},
}

func main() {
	// a no-op unless invoked by the shell completion machinery.
	completion.Complete("cvl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
