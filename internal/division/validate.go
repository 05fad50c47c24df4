package division

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Input errors. Callers must reject input with one of these before invoking
// Divide or DivideChain.
var (
	ErrNotANumber       = errors.New("please enter valid numbers")
	ErrDivisionByZero   = errors.New("cannot divide by zero")
	ErrNegativeOperand  = errors.New("please enter positive numbers")
	ErrEmptyDivisorList = errors.New("please enter divisors separated by commas or spaces")
)

// Message returns the user-facing text for an input error, stripped of the
// wrapping context. Errors outside the input taxonomy are returned as is.
func Message(err error) string {
	for _, target := range []error{ErrNotANumber, ErrDivisionByZero, ErrNegativeOperand, ErrEmptyDivisorList} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// IsInputError reports whether err belongs to the input taxonomy.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNotANumber) ||
		errors.Is(err, ErrDivisionByZero) ||
		errors.Is(err, ErrNegativeOperand) ||
		errors.Is(err, ErrEmptyDivisorList)
}

var (
	nonNumeric     = regexp.MustCompile(`[^0-9.]`)
	nonDivisorList = regexp.MustCompile(`[^0-9,.\s]`)
	listSeparator  = regexp.MustCompile(`[,\s]+`)
)

// SanitizeNumber keeps digits and a single decimal point. Points after the
// first are dropped and the digits around them joined.
func SanitizeNumber(s string) string {
	s = nonNumeric.ReplaceAllString(s, "")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		s = parts[0] + "." + strings.Join(parts[1:], "")
	}
	return s
}

// SanitizeDivisorList keeps digits, decimal points, commas and whitespace.
func SanitizeDivisorList(s string) string {
	return nonDivisorList.ReplaceAllString(s, "")
}

// ParseNumber sanitizes s and parses it as a finite float. A leading minus
// sign survives sanitization so negative input reaches validation.
func ParseNumber(s string) (float64, error) {
	v, ok := parseToken(s)
	if !ok {
		return 0, fmt.Errorf("%q: %w", s, ErrNotANumber)
	}
	return v, nil
}

// ParseDivisors splits s on runs of commas and whitespace and parses each
// token. Tokens that are not numbers are skipped.
func ParseDivisors(s string) ([]float64, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return nil, ErrEmptyDivisorList
	}

	divisors := []float64{}
	for _, tok := range listSeparator.Split(text, -1) {
		if v, ok := parseToken(tok); ok {
			divisors = append(divisors, v)
		}
	}

	if len(divisors) == 0 {
		return nil, ErrEmptyDivisorList
	}
	return divisors, nil
}

func parseToken(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	clean := SanitizeNumber(s)
	if clean == "" || clean == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	if negative && v != 0 {
		v = -v
	}
	return v, true
}

// ValidateLong checks the preconditions of Divide.
func ValidateLong(dividend, divisor float64) error {
	if !isFinite(dividend) || !isFinite(divisor) {
		return ErrNotANumber
	}
	if divisor == 0 {
		return ErrDivisionByZero
	}
	if dividend < 0 || divisor < 0 {
		return ErrNegativeOperand
	}
	return nil
}

// ValidateChain checks the preconditions of DivideChain.
func ValidateChain(start float64, divisors []float64) error {
	if !isFinite(start) {
		return fmt.Errorf("starting number: %w", ErrNotANumber)
	}
	if len(divisors) == 0 {
		return ErrEmptyDivisorList
	}
	for _, d := range divisors {
		if !isFinite(d) {
			return ErrNotANumber
		}
	}
	for _, d := range divisors {
		if d == 0 {
			return ErrDivisionByZero
		}
	}
	if start < 0 {
		return ErrNegativeOperand
	}
	for _, d := range divisors {
		if d < 0 {
			return ErrNegativeOperand
		}
	}
	return nil
}

// ParseLong parses and validates raw dividend and divisor text.
func ParseLong(dividend, divisor string) (float64, float64, error) {
	a, err := ParseNumber(dividend)
	if err != nil {
		return 0, 0, err
	}
	b, err := ParseNumber(divisor)
	if err != nil {
		return 0, 0, err
	}
	if err := ValidateLong(a, b); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// ParseChain parses and validates raw starting number and divisor list text.
func ParseChain(start, divisors string) (float64, []float64, error) {
	s, err := ParseNumber(start)
	if err != nil {
		return 0, nil, fmt.Errorf("starting number: %w", err)
	}
	ds, err := ParseDivisors(divisors)
	if err != nil {
		return 0, nil, err
	}
	if err := ValidateChain(s, ds); err != nil {
		return 0, nil, err
	}
	return s, ds, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
