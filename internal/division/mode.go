package division

import "fmt"

// Mode is the calculator's input mode.
type Mode int

const (
	SimpleMode Mode = iota
	ChainMode
)

func (m Mode) String() string {
	switch m {
	case SimpleMode:
		return "simple"
	case ChainMode:
		return "chain"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "simple" or "chain". An empty string means SimpleMode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "simple":
		return SimpleMode, nil
	case "chain":
		return ChainMode, nil
	default:
		return SimpleMode, fmt.Errorf("unknown mode %q", s)
	}
}

// Event drives a mode transition.
type Event int

const (
	SelectSimple Event = iota
	SelectChain
	ReplaySimple
	ReplayChain
	Clear
)

// Transition returns the mode that follows e in mode m.
func Transition(m Mode, e Event) Mode {
	switch e {
	case SelectSimple, ReplaySimple:
		return SimpleMode
	case SelectChain, ReplayChain:
		return ChainMode
	default:
		return m
	}
}
