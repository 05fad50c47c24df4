package division

// Step is one stage of a digit-by-digit long division.
type Step struct {
	Step        int     `json:"step"`    // 1-based position in the sequence
	Working     float64 `json:"working"` // partial dividend at this step
	Divisor     float64 `json:"divisor"`
	Times       float64 `json:"times"`     // quotient digit for this position
	Product     float64 `json:"product"`   // Times × Divisor
	Remainder   float64 `json:"remainder"` // Working − Product
	Description string  `json:"description"`
}

// Result is the outcome of Divide.
type Result struct {
	Dividend  float64 `json:"dividend"`
	Divisor   float64 `json:"divisor"`
	Quotient  float64 `json:"quotient"`
	Remainder float64 `json:"remainder"`
	Decimal   float64 `json:"decimal"`
	Steps     []Step  `json:"steps"`
}

// ChainStep records one division in a chain.
type ChainStep struct {
	Step        int     `json:"step"`
	Dividend    float64 `json:"dividend"`
	Divisor     float64 `json:"divisor"`
	Quotient    float64 `json:"quotient"`
	Remainder   float64 `json:"remainder"`
	Decimal     float64 `json:"decimal"`
	Description string  `json:"description"`
}

// ChainResult is the outcome of DivideChain.
type ChainResult struct {
	Start       float64     `json:"start"`
	Divisors    []float64   `json:"divisors"`
	Steps       []ChainStep `json:"steps"`
	FinalResult float64     `json:"final_result"`
	Expression  string      `json:"expression"`
}
