package division

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestDivideKnownValues(t *testing.T) {
	tests := []struct {
		dividend, divisor   float64
		quotient, remainder float64
		steps               int
	}{
		{dividend: 156, divisor: 12, quotient: 13, remainder: 0, steps: 2},
		{dividend: 567, divisor: 8, quotient: 70, remainder: 7, steps: 2},
		{dividend: 9876, divisor: 23, quotient: 429, remainder: 9, steps: 3},
		{dividend: 1005, divisor: 5, quotient: 201, remainder: 0, steps: 3},
		{dividend: 7, divisor: 12, quotient: 0, remainder: 7, steps: 0},
	}

	for _, tc := range tests {
		t.Run(FormatNumber(tc.dividend)+"/"+FormatNumber(tc.divisor), func(t *testing.T) {
			got := Divide(tc.dividend, tc.divisor)
			if got.Quotient != tc.quotient {
				t.Fatalf("expected quotient %g, got %g", tc.quotient, got.Quotient)
			}
			if got.Remainder != tc.remainder {
				t.Fatalf("expected remainder %g, got %g", tc.remainder, got.Remainder)
			}
			if len(got.Steps) != tc.steps {
				t.Fatalf("expected %d steps, got %d: %+v", tc.steps, len(got.Steps), got.Steps)
			}
		})
	}
}

func TestDivideStepDetails(t *testing.T) {
	got := Divide(567, 8)

	want := []Step{
		{Step: 1, Working: 56, Divisor: 8, Times: 7, Product: 56, Remainder: 0,
			Description: "8 goes into 56 7 time(s). 7 × 8 = 56. Subtract: 56 - 56 = 0"},
		{Step: 2, Working: 7, Divisor: 8, Times: 0, Product: 0, Remainder: 7,
			Description: "8 does not go into 7. Write 0 in quotient."},
	}

	if !reflect.DeepEqual(got.Steps, want) {
		t.Fatalf("expected steps %+v, got %+v", want, got.Steps)
	}

	if got.Decimal != 70.875 {
		t.Fatalf("expected decimal 70.875, got %g", got.Decimal)
	}
}

func TestDivideZeroDividend(t *testing.T) {
	for _, b := range []float64{1, 3, 12, 1000} {
		got := Divide(0, b)
		if got.Quotient != 0 || got.Remainder != 0 {
			t.Fatalf("0/%g: expected 0 r0, got %g r%g", b, got.Quotient, got.Remainder)
		}
		if len(got.Steps) != 0 {
			t.Fatalf("0/%g: expected no steps, got %d", b, len(got.Steps))
		}
		if got.Steps == nil {
			t.Fatalf("0/%g: expected empty, non-nil steps", b)
		}
	}
}

func TestDivideFractionalDividendStepsIntegerPart(t *testing.T) {
	got := Divide(156.5, 12)

	if len(got.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(got.Steps))
	}
	if got.Quotient != 13 {
		t.Fatalf("expected quotient 13, got %g", got.Quotient)
	}
	if got.Remainder != 0.5 {
		t.Fatalf("expected remainder 0.5, got %g", got.Remainder)
	}
	if got.Decimal != 156.5/12 {
		t.Fatalf("expected decimal %g, got %g", 156.5/12, got.Decimal)
	}
}

func TestDivideQuotientRemainderIdentity(t *testing.T) {
	for a := 0; a <= 2500; a += 7 {
		for b := 1; b <= 60; b++ {
			dividend, divisor := float64(a), float64(b)
			got := Divide(dividend, divisor)

			if got.Quotient*divisor+got.Remainder != dividend {
				t.Fatalf("%d/%d: %g × %d + %g != %d", a, b, got.Quotient, b, got.Remainder, a)
			}
			if got.Remainder < 0 || got.Remainder >= divisor {
				t.Fatalf("%d/%d: remainder %g out of range", a, b, got.Remainder)
			}

			if len(got.Steps) == 0 {
				if got.Quotient != 0 {
					t.Fatalf("%d/%d: no steps but quotient %g", a, b, got.Quotient)
				}
				continue
			}

			last := got.Steps[len(got.Steps)-1]
			if last.Remainder != got.Remainder {
				t.Fatalf("%d/%d: last step remainder %g, result remainder %g", a, b, last.Remainder, got.Remainder)
			}

			var digits strings.Builder
			for i, s := range got.Steps {
				if s.Step != i+1 {
					t.Fatalf("%d/%d: step %d numbered %d", a, b, i+1, s.Step)
				}
				if s.Product != s.Times*s.Divisor || s.Remainder != s.Working-s.Product {
					t.Fatalf("%d/%d: inconsistent step %+v", a, b, s)
				}
				digits.WriteString(FormatNumber(s.Times))
			}
			if digits.String() != FormatNumber(got.Quotient) {
				t.Fatalf("%d/%d: step digits %q, quotient %g", a, b, digits.String(), got.Quotient)
			}
		}
	}
}

func TestDivideIsDeterministic(t *testing.T) {
	first := Divide(4567, 13)
	second := Divide(4567, 13)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestDivideChainKnownValues(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		divisors []float64
		steps    []ChainStep
		final    float64
		expr     string
	}{
		{
			name:     "1000",
			start:    1000,
			divisors: []float64{5, 4, 10},
			steps: []ChainStep{
				{Step: 1, Dividend: 1000, Divisor: 5, Quotient: 200, Remainder: 0, Decimal: 200, Description: "Step 1: 1000 ÷ 5 = 200"},
				{Step: 2, Dividend: 200, Divisor: 4, Quotient: 50, Remainder: 0, Decimal: 50, Description: "Step 2: 200 ÷ 4 = 50"},
				{Step: 3, Dividend: 50, Divisor: 10, Quotient: 5, Remainder: 0, Decimal: 5, Description: "Step 3: 50 ÷ 10 = 5"},
			},
			final: 5,
			expr:  "1000 ÷ 5 ÷ 4 ÷ 10 = 5",
		},
		{
			name:     "720",
			start:    720,
			divisors: []float64{2, 3, 4},
			steps: []ChainStep{
				{Step: 1, Dividend: 720, Divisor: 2, Quotient: 360, Remainder: 0, Decimal: 360, Description: "Step 1: 720 ÷ 2 = 360"},
				{Step: 2, Dividend: 360, Divisor: 3, Quotient: 120, Remainder: 0, Decimal: 120, Description: "Step 2: 360 ÷ 3 = 120"},
				{Step: 3, Dividend: 120, Divisor: 4, Quotient: 30, Remainder: 0, Decimal: 30, Description: "Step 3: 120 ÷ 4 = 30"},
			},
			final: 30,
			expr:  "720 ÷ 2 ÷ 3 ÷ 4 = 30",
		},
		{
			name:     "remainders are dropped",
			start:    100,
			divisors: []float64{7, 3},
			steps: []ChainStep{
				{Step: 1, Dividend: 100, Divisor: 7, Quotient: 14, Remainder: 2, Decimal: 100.0 / 7, Description: "Step 1: 100 ÷ 7 = 14 remainder 2"},
				{Step: 2, Dividend: 14, Divisor: 3, Quotient: 4, Remainder: 2, Decimal: 14.0 / 3, Description: "Step 2: 14 ÷ 3 = 4 remainder 2"},
			},
			final: 4,
			expr:  "100 ÷ 7 ÷ 3 = 4",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DivideChain(tc.start, tc.divisors)
			if !reflect.DeepEqual(got.Steps, tc.steps) {
				t.Fatalf("expected steps %+v, got %+v", tc.steps, got.Steps)
			}
			if got.FinalResult != tc.final {
				t.Fatalf("expected final result %g, got %g", tc.final, got.FinalResult)
			}
			if got.Expression != tc.expr {
				t.Fatalf("expected expression %q, got %q", tc.expr, got.Expression)
			}
		})
	}
}

func TestDivideChainEdgeCases(t *testing.T) {
	t.Run("single divisor matches Divide", func(t *testing.T) {
		chain := DivideChain(567, []float64{8})
		simple := Divide(567, 8)
		if chain.FinalResult != simple.Quotient || chain.Steps[0].Remainder != simple.Remainder {
			t.Fatalf("expected %g r%g, got %g r%g", simple.Quotient, simple.Remainder, chain.FinalResult, chain.Steps[0].Remainder)
		}
	})

	t.Run("divisor of one", func(t *testing.T) {
		got := DivideChain(42, []float64{1, 1})
		for _, s := range got.Steps {
			if s.Quotient != 42 || s.Remainder != 0 {
				t.Fatalf("expected 42 r0, got %g r%g", s.Quotient, s.Remainder)
			}
		}
	})

	t.Run("zero start", func(t *testing.T) {
		got := DivideChain(0, []float64{3, 9, 2})
		for _, s := range got.Steps {
			if s.Quotient != 0 {
				t.Fatalf("expected quotient 0, got %g", s.Quotient)
			}
		}
		if got.FinalResult != 0 {
			t.Fatalf("expected final result 0, got %g", got.FinalResult)
		}
	})

	t.Run("empty divisors", func(t *testing.T) {
		got := DivideChain(9, nil)
		if got.FinalResult != 9 {
			t.Fatalf("expected final result 9, got %g", got.FinalResult)
		}
		if len(got.Steps) != 0 {
			t.Fatalf("expected no steps, got %d", len(got.Steps))
		}
		if got.Expression != "9 = 9" {
			t.Fatalf("expected expression %q, got %q", "9 = 9", got.Expression)
		}
	})

	t.Run("divisors are copied", func(t *testing.T) {
		in := []float64{2, 5}
		got := DivideChain(100, in)
		in[0] = 99
		if got.Divisors[0] != 2 {
			t.Fatalf("expected result to keep divisor 2, got %g", got.Divisors[0])
		}
	})
}

func TestDivideChainCarriesQuotient(t *testing.T) {
	divisorSets := [][]float64{
		{1}, {2, 3}, {7, 7, 7}, {1, 13, 2, 5}, {25, 8, 5}, {12, 6, 4}, {3, 1, 1, 9},
	}

	for start := 0; start <= 5000; start += 37 {
		for _, divisors := range divisorSets {
			got := DivideChain(float64(start), divisors)

			current := float64(start)
			for i, d := range divisors {
				s := got.Steps[i]
				if s.Quotient*s.Divisor+s.Remainder != s.Dividend {
					t.Fatalf("start %d step %d: %g × %g + %g != %g", start, i+1, s.Quotient, s.Divisor, s.Remainder, s.Dividend)
				}
				current = math.Floor(current / d)
			}

			if got.FinalResult != current {
				t.Fatalf("start %d %v: expected %g, got %g", start, divisors, current, got.FinalResult)
			}
			if got.FinalResult < 0 || got.FinalResult > float64(start) || got.FinalResult != math.Trunc(got.FinalResult) {
				t.Fatalf("start %d %v: final result %g not an integer in [0, start]", start, divisors, got.FinalResult)
			}
		}
	}
}
