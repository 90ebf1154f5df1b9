package transition

import (
	"errors"
	"fmt"
)

// ErrUnknownPolicy indicates an overshoot policy name that cannot be parsed.
var ErrUnknownPolicy = errors.New("transition: unknown overshoot policy")

// Policy decides what happens to curve weights outside [0, 1].
type Policy int

const (
	// Extrapolate passes the weight through, so overshoot curves carry the
	// target beyond the destination along the same line and arc.
	Extrapolate Policy = iota
	// Clamp limits the weight to [0, 1].
	Clamp
)

func (p Policy) String() string {
	switch p {
	case Extrapolate:
		return "extrapolate"
	case Clamp:
		return "clamp"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "extrapolate":
		return Extrapolate, nil
	case "clamp":
		return Clamp, nil
	default:
		return Extrapolate, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}
