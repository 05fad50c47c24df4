// Package division implements long division with human-readable steps and
// chained sequential division.
//
// Both engines assume validated input: a non-negative dividend (or start)
// and strictly positive divisors. Use ValidateLong and ValidateChain, or the
// Parse helpers, before calling them.
package division

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Divide performs long division of dividend by divisor.
//
// Only the integer part of dividend is broken into steps. The exact quotient
// is reported separately in Result.Decimal.
func Divide(dividend, divisor float64) Result {
	return Result{
		Dividend:  dividend,
		Divisor:   divisor,
		Quotient:  math.Floor(dividend / divisor),
		Remainder: math.Mod(dividend, divisor),
		Decimal:   dividend / divisor,
		Steps:     longSteps(dividend, divisor),
	}
}

func longSteps(dividend, divisor float64) []Step {
	digits := strconv.FormatFloat(math.Floor(dividend), 'f', 0, 64)

	steps := []Step{}
	working := 0.0
	started := false // a significant quotient digit has been written

	for _, c := range digits {
		working = working*10 + float64(c-'0')

		if working < divisor {
			if !started {
				continue
			}
			steps = append(steps, Step{
				Step:      len(steps) + 1,
				Working:   working,
				Divisor:   divisor,
				Times:     0,
				Product:   0,
				Remainder: working,
				Description: fmt.Sprintf("%s does not go into %s. Write 0 in quotient.",
					FormatNumber(divisor), FormatNumber(working)),
			})
			continue
		}

		times := math.Floor(working / divisor)
		product := times * divisor
		remainder := working - product

		steps = append(steps, Step{
			Step:      len(steps) + 1,
			Working:   working,
			Divisor:   divisor,
			Times:     times,
			Product:   product,
			Remainder: remainder,
			Description: fmt.Sprintf("%s goes into %s %s time(s). %s × %s = %s. Subtract: %s - %s = %s",
				FormatNumber(divisor), FormatNumber(working), FormatNumber(times),
				FormatNumber(times), FormatNumber(divisor), FormatNumber(product),
				FormatNumber(working), FormatNumber(product), FormatNumber(remainder)),
		})

		started = true
		working = remainder
	}

	return steps
}

// DivideChain divides start by each divisor in turn, carrying the truncated
// quotient of every step into the next one. Remainders are not carried.
func DivideChain(start float64, divisors []float64) ChainResult {
	steps := make([]ChainStep, 0, len(divisors))
	current := start

	for i, divisor := range divisors {
		quotient := math.Floor(current / divisor)
		remainder := math.Mod(current, divisor)

		desc := fmt.Sprintf("Step %d: %s ÷ %s = %s",
			i+1, FormatNumber(current), FormatNumber(divisor), FormatNumber(quotient))
		if remainder > 0 {
			desc += " remainder " + FormatNumber(remainder)
		}

		steps = append(steps, ChainStep{
			Step:        i + 1,
			Dividend:    current,
			Divisor:     divisor,
			Quotient:    quotient,
			Remainder:   remainder,
			Decimal:     current / divisor,
			Description: desc,
		})

		current = quotient
	}

	return ChainResult{
		Start:       start,
		Divisors:    append([]float64{}, divisors...),
		Steps:       steps,
		FinalResult: current,
		Expression:  ChainExpression(start, divisors, current),
	}
}

// ChainExpression renders "start ÷ d1 ÷ d2 = result".
func ChainExpression(start float64, divisors []float64, result float64) string {
	var b strings.Builder
	b.WriteString(FormatNumber(start))
	for _, d := range divisors {
		b.WriteString(" ÷ ")
		b.WriteString(FormatNumber(d))
	}
	b.WriteString(" = ")
	b.WriteString(FormatNumber(result))
	return b.String()
}

// FormatNumber prints v in the shortest decimal form that round-trips,
// without an exponent.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
