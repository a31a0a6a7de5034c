package collateral

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// CommandType identifies the kind of a journal movement.
type CommandType string

const (
	CmdDeposit  CommandType = "deposit"
	CmdWithdraw CommandType = "withdraw"
)

// Movement is one collateral mutation recorded by a hosting service in its
// append-only journal. The ledger itself is storage-free; the journal is the
// canonical way for a host to persist and replay it.
type Movement struct {
	Command CommandType
	Time    time.Time // optional, when the host recorded the movement
	Account string
	Token   string
	Amount  Amount
}

// MarshalJSON implements the json.Marshaler interface with a fixed field
// order, so journals are diffable line by line.
func (m Movement) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", m.Command)
	if !m.Time.IsZero() {
		w.Append("time", m.Time.UTC().Format(time.RFC3339))
	}
	w.Append("account", m.Account)
	w.Append("token", m.Token)
	w.Append("amount", m.Amount)
	return w.MarshalJSON()
}

// EncodeMovement appends a single movement as one canonical JSONL line.
func EncodeMovement(w io.Writer, m Movement) error {
	switch m.Command {
	case CmdDeposit, CmdWithdraw:
	default:
		return fmt.Errorf("cannot encode movement with command %q", m.Command)
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("cannot encode movement: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("cannot write movement: %w", err)
	}
	return nil
}

// DecodeJournal decodes movements from a stream of JSONL data, one movement
// per line, skipping empty lines.
func DecodeJournal(r io.Reader) ([]Movement, error) {
	var movements []Movement
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}

		var temp struct {
			Command CommandType `json:"command"`
			Time    time.Time   `json:"time"`
			Account string      `json:"account"`
			Token   string      `json:"token"`
			Amount  Amount      `json:"amount"`
		}
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			return nil, fmt.Errorf("could not decode journal line %d %q: %w", line, string(lineBytes), err)
		}
		switch temp.Command {
		case CmdDeposit, CmdWithdraw:
		default:
			return nil, fmt.Errorf("unknown command %q in journal line %d", temp.Command, line)
		}
		movements = append(movements, Movement{
			Command: temp.Command,
			Time:    temp.Time,
			Account: temp.Account,
			Token:   temp.Token,
			Amount:  temp.Amount,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read journal: %w", err)
	}
	return movements, nil
}

// Replay applies movements in order. It fails on the first movement the
// ledger rejects, typically a withdrawal recorded without its deposit.
func (l *Ledger) Replay(movements []Movement) error {
	for i, m := range movements {
		var err error
		switch m.Command {
		case CmdDeposit:
			err = l.Add(m.Account, m.Token, m.Amount)
		case CmdWithdraw:
			err = l.Sub(m.Account, m.Token, m.Amount)
		default:
			err = fmt.Errorf("unknown command %q", m.Command)
		}
		if err != nil {
			return fmt.Errorf("journal movement %d: %w", i+1, err)
		}
	}
	return nil
}
