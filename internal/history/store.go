// Package history keeps a bounded, newest-first log of completed
// calculations.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"long-division-api/internal/division"
)

// DefaultLimit is the number of entries a store keeps.
const DefaultLimit = 10

// ErrNotFound is returned when an entry index is out of range.
var ErrNotFound = errors.New("history entry not found")

// Kind tags which calculation an Entry records.
type Kind string

const (
	KindSimple Kind = "simple"
	KindChain  Kind = "chain"
)

// SimpleRecord holds the operands and result of a long division.
type SimpleRecord struct {
	Dividend  float64 `json:"dividend"`
	Divisor   float64 `json:"divisor"`
	Quotient  float64 `json:"quotient"`
	Remainder float64 `json:"remainder"`
}

// ChainRecord holds the operands and result of a chain division.
type ChainRecord struct {
	Start       float64   `json:"start"`
	Divisors    []float64 `json:"divisors"`
	FinalResult float64   `json:"final_result"`
	Expression  string    `json:"expression"`
}

// Entry is one recorded calculation. Exactly one of Simple and Chain is set,
// matching Kind. Entries are never modified after creation.
type Entry struct {
	ID        string        `json:"id"`
	Kind      Kind          `json:"kind"`
	Simple    *SimpleRecord `json:"simple,omitempty"`
	Chain     *ChainRecord  `json:"chain,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// Store is an append-only, bounded history. List returns newest first.
type Store interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context) ([]Entry, error)
	Clear(ctx context.Context) error
}

// NewSimpleEntry records a long division result.
func NewSimpleEntry(r division.Result, now time.Time) Entry {
	return Entry{
		ID:   uuid.New().String(),
		Kind: KindSimple,
		Simple: &SimpleRecord{
			Dividend:  r.Dividend,
			Divisor:   r.Divisor,
			Quotient:  r.Quotient,
			Remainder: r.Remainder,
		},
		CreatedAt: now.UTC(),
	}
}

// NewChainEntry records a chain division result.
func NewChainEntry(r division.ChainResult, now time.Time) Entry {
	return Entry{
		ID:   uuid.New().String(),
		Kind: KindChain,
		Chain: &ChainRecord{
			Start:       r.Start,
			Divisors:    append([]float64{}, r.Divisors...),
			FinalResult: r.FinalResult,
			Expression:  r.Expression,
		},
		CreatedAt: now.UTC(),
	}
}

// Validate reports whether the payload matches Kind.
func (e Entry) Validate() error {
	switch e.Kind {
	case KindSimple:
		if e.Simple == nil || e.Chain != nil {
			return fmt.Errorf("entry %s: simple entry needs exactly a simple payload", e.ID)
		}
	case KindChain:
		if e.Chain == nil || e.Simple != nil {
			return fmt.Errorf("entry %s: chain entry needs exactly a chain payload", e.ID)
		}
	default:
		return fmt.Errorf("entry %s: unknown kind %q", e.ID, e.Kind)
	}
	return nil
}

// Mode is the calculator mode that replays e.
func (e Entry) Mode() division.Mode {
	event := division.ReplaySimple
	if e.Kind == KindChain {
		event = division.ReplayChain
	}
	return division.Transition(division.SimpleMode, event)
}

// Line renders e as a single history line.
func (e Entry) Line() string {
	switch e.Kind {
	case KindChain:
		if e.Chain == nil {
			return ""
		}
		parts := make([]string, 0, len(e.Chain.Divisors)+1)
		parts = append(parts, division.FormatNumber(e.Chain.Start))
		for _, d := range e.Chain.Divisors {
			parts = append(parts, division.FormatNumber(d))
		}
		return strings.Join(parts, " ÷ ") + " = " + division.FormatNumber(e.Chain.FinalResult)
	default:
		if e.Simple == nil {
			return ""
		}
		s := e.Simple
		return fmt.Sprintf("%s ÷ %s = %s R%s",
			division.FormatNumber(s.Dividend), division.FormatNumber(s.Divisor),
			division.FormatNumber(s.Quotient), division.FormatNumber(s.Remainder))
	}
}

// At returns the entry at index (0 is newest).
func At(ctx context.Context, s Store, index int) (Entry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return Entry{}, err
	}
	if index < 0 || index >= len(entries) {
		return Entry{}, fmt.Errorf("index %d of %d: %w", index, len(entries), ErrNotFound)
	}
	return entries[index], nil
}
