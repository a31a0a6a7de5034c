// Package cmd implements the CLI application to manage a collateral ledger.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/vaultd/collateral"
	"github.com/vaultd/collateral/oracle"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&depositCmd{}, "movements")
	c.Register(&withdrawCmd{}, "movements")
	c.Register(&fmtCmd{}, "movements")

	c.Register(&balancesCmd{}, "valuation")
	c.Register(&accountCmd{}, "valuation")
	c.Register(&valueCmd{}, "valuation")
	c.Register(&tokensCmd{}, "valuation")

	c.Register(&assistCmd{}, "assistant")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const oracleURLEnv = "CVL_ORACLE_URL"

var ledgerFile = flag.String("ledger-file", "movements.jsonl", "Path to the journal file containing collateral movements (JSONL format)")
var oracleURL = flag.String("oracle-url", "", "Base URL of the price daemon.\n If missing it will read the environment variable \""+oracleURLEnv+"\".")
var oraclePath = flag.String("oracle-path", oracle.DefaultPricePath, "jsonpath locating the price in the daemon response")
var ratesFile = flag.String("rates", "", "Path to a JSON file pinning token rates, used instead of the price daemon")
var oracleTTL = flag.Duration("oracle-cache", 0, "Cache daemon rates for this duration, 0 disables the cache")

// DecodeLedger replays the journal file into a fresh ledger. If the file
// does not exist, it returns an empty ledger.
func DecodeLedger() (*collateral.Ledger, error) {
	ledger := collateral.NewLedger()
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return ledger, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open journal file %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	movements, err := collateral.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode journal file %q: %w", *ledgerFile, err)
	}
	if err := ledger.Replay(movements); err != nil {
		return nil, fmt.Errorf("could not replay journal file %q: %w", *ledgerFile, err)
	}
	return ledger, nil
}

// NewOracle builds the price oracle from the app flags: a pinned rates file
// takes precedence, then the price daemon, optionally behind a TTL cache.
func NewOracle() (collateral.PriceOracle, error) {
	if *ratesFile != "" {
		f, err := os.Open(*ratesFile)
		if err != nil {
			return nil, fmt.Errorf("could not open rates file %q: %w", *ratesFile, err)
		}
		defer f.Close()
		return oracle.DecodeStatic(f)
	}

	addr := *oracleURL
	if addr == "" {
		addr = os.Getenv(oracleURLEnv)
	}
	if addr == "" {
		return nil, fmt.Errorf("no oracle configured: set -oracle-url, %s or -rates", oracleURLEnv)
	}
	client := oracle.NewClient(addr)
	client.SetPricePath(*oraclePath)

	var po collateral.PriceOracle = client
	if *oracleTTL > 0 {
		po = oracle.NewCached(po, *oracleTTL)
	}
	return po, nil
}

// NewSystem replays the journal and wires it to the configured oracle.
func NewSystem(reportingCurrency string) (*collateral.System, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, err
	}
	po, err := NewOracle()
	if err != nil {
		return nil, err
	}
	return collateral.NewSystem(ledger, po, reportingCurrency)
}

// EncodeMovement appends a single movement into the app default journal file.
func EncodeMovement(m collateral.Movement) subcommands.ExitStatus {
	filename := *ledgerFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := collateral.EncodeMovement(f, m); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s to %s\n", m.Command, filename)
	return subcommands.ExitSuccess
}

// newMovement stamps a movement with the current time.
func newMovement(command collateral.CommandType, account, token string, amount collateral.Amount) collateral.Movement {
	return collateral.Movement{
		Command: command,
		Time:    time.Now(),
		Account: account,
		Token:   token,
		Amount:  amount,
	}
}
