package calculator

import (
	"fmt"

	"long-division-api/internal/division"
	"long-division-api/internal/history"
)

// DisplayOptions toggles optional rendering. Missing fields default to true.
type DisplayOptions struct {
	ShowSteps    *bool `json:"show_steps,omitempty"`
	ShowDecimals *bool `json:"show_decimals,omitempty"`
}

func (o DisplayOptions) resolve() division.Options {
	opts := division.DefaultOptions()
	if o.ShowSteps != nil {
		opts.ShowSteps = *o.ShowSteps
	}
	if o.ShowDecimals != nil {
		opts.ShowDecimals = *o.ShowDecimals
	}
	return opts
}

// LongRequest is the JSON body for POST /calculator/long. Absent operands
// are rejected as not-a-number.
type LongRequest struct {
	Dividend *float64 `json:"dividend"`
	Divisor  *float64 `json:"divisor"`
	DisplayOptions
}

// operands returns the validated dividend and divisor.
func (r LongRequest) operands() (float64, float64, error) {
	if r.Dividend == nil {
		return 0, 0, fmt.Errorf("dividend: %w", division.ErrNotANumber)
	}
	if r.Divisor == nil {
		return 0, 0, fmt.Errorf("divisor: %w", division.ErrNotANumber)
	}
	if err := division.ValidateLong(*r.Dividend, *r.Divisor); err != nil {
		return 0, 0, err
	}
	return *r.Dividend, *r.Divisor, nil
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Start    *float64  `json:"start"`
	Divisors []float64 `json:"divisors"`
	DisplayOptions
}

// operands returns the validated starting number.
func (r ChainRequest) operands() (float64, error) {
	if r.Start == nil {
		return 0, fmt.Errorf("starting number: %w", division.ErrNotANumber)
	}
	if err := division.ValidateChain(*r.Start, r.Divisors); err != nil {
		return 0, err
	}
	return *r.Start, nil
}

// CalculateRequest is the JSON body for POST /calculator/calculate. All
// operands are raw user text and are sanitized before parsing.
type CalculateRequest struct {
	Mode     string `json:"mode"` // "simple" or "chain"
	Dividend string `json:"dividend"`
	Divisor  string `json:"divisor"`
	Start    string `json:"start"`
	Divisors string `json:"divisors"` // comma or whitespace separated
	DisplayOptions
}

// LongResponse is the JSON response for a long division.
type LongResponse struct {
	Mode string `json:"mode"`
	division.Result
	Rendering division.Rendering `json:"rendering"`
	HistoryID string             `json:"history_id"`
}

// ChainResponse is the JSON response for a chain division.
type ChainResponse struct {
	Mode string `json:"mode"`
	division.ChainResult
	Rendering division.ChainRendering `json:"rendering"`
	HistoryID string                  `json:"history_id"`
}

// HistoryItem is one entry of GET /calculator/history.
type HistoryItem struct {
	history.Entry
	Line string `json:"line"`
}

// HistoryResponse is the JSON response for GET /calculator/history.
type HistoryResponse struct {
	Entries []HistoryItem `json:"entries"`
}

// ExamplesResponse is the JSON response for GET /calculator/examples.
type ExamplesResponse struct {
	Simple []division.LongExample  `json:"simple"`
	Chain  []division.ChainExample `json:"chain"`
}

// StreamEvent is one NDJSON line of POST /calculator/long/stream.
type StreamEvent struct {
	Type    string         `json:"type"` // "step" or "summary"
	Step    *division.Step `json:"step,omitempty"`
	Summary *LongResponse  `json:"summary,omitempty"`
}

// ChainStreamEvent is one NDJSON line of POST /calculator/chain/stream.
type ChainStreamEvent struct {
	Type    string              `json:"type"`
	Step    *division.ChainStep `json:"step,omitempty"`
	Summary *ChainResponse      `json:"summary,omitempty"`
}
