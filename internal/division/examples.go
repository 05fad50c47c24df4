package division

import "math/rand/v2"

// LongExample is a canned simple division.
type LongExample struct {
	Dividend float64 `json:"dividend"`
	Divisor  float64 `json:"divisor"`
}

// ChainExample is a canned chain division.
type ChainExample struct {
	Start    float64   `json:"start"`
	Divisors []float64 `json:"divisors"`
}

var longExamples = []LongExample{
	{Dividend: 156, Divisor: 12},
	{Dividend: 567, Divisor: 8},
	{Dividend: 9876, Divisor: 23},
	{Dividend: 4567, Divisor: 13},
	{Dividend: 1234, Divisor: 17},
	{Dividend: 8888, Divisor: 11},
}

var chainExamples = []ChainExample{
	{Start: 1000, Divisors: []float64{5, 4, 10}},
	{Start: 720, Divisors: []float64{2, 3, 4}},
	{Start: 10000, Divisors: []float64{25, 8, 5}},
	{Start: 8640, Divisors: []float64{12, 6, 4}},
	{Start: 5040, Divisors: []float64{7, 6, 5}},
}

// LongExamples returns a copy of the canned simple divisions.
func LongExamples() []LongExample {
	return append([]LongExample(nil), longExamples...)
}

// ChainExamples returns a copy of the canned chain divisions.
func ChainExamples() []ChainExample {
	out := make([]ChainExample, len(chainExamples))
	for i, ex := range chainExamples {
		out[i] = ChainExample{Start: ex.Start, Divisors: append([]float64(nil), ex.Divisors...)}
	}
	return out
}

// RandomLongExample picks one canned simple division.
func RandomLongExample() LongExample {
	return longExamples[rand.IntN(len(longExamples))]
}

// RandomChainExample picks one canned chain division.
func RandomChainExample() ChainExample {
	ex := chainExamples[rand.IntN(len(chainExamples))]
	return ChainExample{Start: ex.Start, Divisors: append([]float64(nil), ex.Divisors...)}
}
