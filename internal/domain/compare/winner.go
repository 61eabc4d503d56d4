package compare

// Winner is the tagged outcome of a comparison.
type Winner int

// Winner values. The zero value is not a valid outcome.
const (
	First Winner = iota + 1
	Second
	Tie
)

// String returns a stable lower-case name.
func (w Winner) String() string {
	switch w {
	case First:
		return "first"
	case Second:
		return "second"
	case Tie:
		return "tie"
	default:
		return "unknown"
	}
}

// Flip swaps First and Second. Tie is unchanged.
func (w Winner) Flip() Winner {
	switch w {
	case First:
		return Second
	case Second:
		return First
	default:
		return w
	}
}

func decide(a, b int) Winner {
	switch {
	case a > b:
		return First
	case b > a:
		return Second
	default:
		return Tie
	}
}
