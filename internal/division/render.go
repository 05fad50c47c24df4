package division

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal places used when a non-exact quotient is shown.
const (
	LongDecimalPlaces  = 6
	ChainDecimalPlaces = 4
)

// Options selects which optional parts of a rendering are produced.
type Options struct {
	ShowSteps    bool `json:"show_steps"`
	ShowDecimals bool `json:"show_decimals"`
}

// DefaultOptions shows everything.
func DefaultOptions() Options {
	return Options{ShowSteps: true, ShowDecimals: true}
}

// Rendering is the display form of a long division.
type Rendering struct {
	Summary      string   `json:"summary"`
	Decimal      string   `json:"decimal,omitempty"`
	Verification string   `json:"verification"`
	Steps        []string `json:"steps,omitempty"`
	Visual       string   `json:"visual,omitempty"`
}

// ChainRendering is the display form of a chain division.
type ChainRendering struct {
	Summary string             `json:"summary"`
	Steps   []ChainStepDisplay `json:"steps,omitempty"`
	Process []string           `json:"process"`
}

// ChainStepDisplay is one rendered chain step.
type ChainStepDisplay struct {
	Step         int    `json:"step"`
	Description  string `json:"description"`
	Decimal      string `json:"decimal,omitempty"`
	Verification string `json:"verification"`
}

// Fixed renders v rounded to places decimal places. Rounding applies to the
// exact binary value of v, not its shortest decimal form, so 1.005 renders
// as "1.00" at two places.
func Fixed(v float64, places int32) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', int(places), 64)
	}
	d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits(v), 64))
	if err != nil {
		d = decimal.NewFromFloat(v)
	}
	return d.StringFixed(places)
}

// exactDigits is the number of fractional decimal digits that represent v
// without loss.
func exactDigits(v float64) int {
	_, exp := math.Frexp(v)
	return max(0, 53-exp)
}

// Render formats r for display.
func Render(r Result, opts Options) Rendering {
	summary := fmt.Sprintf("%s ÷ %s = %s", FormatNumber(r.Dividend), FormatNumber(r.Divisor), FormatNumber(r.Quotient))
	if r.Remainder > 0 {
		summary += " R" + FormatNumber(r.Remainder)
		if opts.ShowDecimals {
			summary += fmt.Sprintf(" (or %s)", Fixed(r.Decimal, LongDecimalPlaces))
		}
	}

	out := Rendering{
		Summary:      summary,
		Verification: Verification(r),
	}
	if opts.ShowDecimals {
		out.Decimal = FormatNumber(r.Decimal)
	}
	if opts.ShowSteps {
		for _, s := range r.Steps {
			out.Steps = append(out.Steps, s.Description)
		}
		out.Visual = Visual(r)
	}
	return out
}

// Verification renders "(q × d) + r = dividend".
func Verification(r Result) string {
	return fmt.Sprintf("(%s × %s) + %s = %s",
		FormatNumber(r.Quotient), FormatNumber(r.Divisor), FormatNumber(r.Remainder),
		FormatNumber(r.Quotient*r.Divisor+r.Remainder))
}

// Visual draws the long-division bracket with the quotient above it.
func Visual(r Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "         %s\n", FormatNumber(r.Quotient))
	b.WriteString("      ________\n")
	fmt.Fprintf(&b, "%s | %s\n", FormatNumber(r.Divisor), FormatNumber(r.Dividend))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s ÷ %s = %s remainder %s\n",
		FormatNumber(r.Dividend), FormatNumber(r.Divisor), FormatNumber(r.Quotient), FormatNumber(r.Remainder))
	return b.String()
}

// RenderChain formats r for display.
func RenderChain(r ChainResult, opts Options) ChainRendering {
	out := ChainRendering{
		Summary: r.Expression,
		Process: []string{FormatNumber(r.Start)},
	}

	for _, s := range r.Steps {
		line := fmt.Sprintf("÷ %s = %s", FormatNumber(s.Divisor), FormatNumber(s.Quotient))
		if s.Remainder > 0 {
			line += fmt.Sprintf(" (remainder: %s)", FormatNumber(s.Remainder))
		}
		out.Process = append(out.Process, line)

		if !opts.ShowSteps {
			continue
		}
		d := ChainStepDisplay{
			Step:        s.Step,
			Description: s.Description,
			Verification: fmt.Sprintf("%s × %s + %s = %s",
				FormatNumber(s.Quotient), FormatNumber(s.Divisor), FormatNumber(s.Remainder), FormatNumber(s.Dividend)),
		}
		if opts.ShowDecimals && s.Remainder > 0 {
			d.Decimal = Fixed(s.Decimal, ChainDecimalPlaces)
		}
		out.Steps = append(out.Steps, d)
	}

	out.Process = append(out.Process, "Final Answer: "+FormatNumber(r.FinalResult))
	return out
}
