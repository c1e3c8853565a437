package kinematics

import "fmt"

// ErrorDirection selects one of three deterministic error hypotheses.
// Every derived quantity is computed once per direction.
type ErrorDirection int

const (
	// Min makes the value as small as the error terms allow
	Min ErrorDirection = -1
	// Mid ignores error terms
	Mid ErrorDirection = 0
	// Max makes the value as large as the error terms allow
	Max ErrorDirection = 1
)

// Directions returns all directions in ascending order
func Directions() []ErrorDirection {
	return []ErrorDirection{Min, Mid, Max}
}

// Flip swaps Min and Max. Mid stays Mid.
func Flip(d ErrorDirection) ErrorDirection {
	switch d {
	case Min:
		return Max
	case Max:
		return Min
	default:
		return Mid
	}
}

// Sign returns -1, 0 or +1
func (d ErrorDirection) Sign() float64 {
	return float64(d)
}

// Valid reports whether d is one of Min, Mid, Max
func (d ErrorDirection) Valid() bool {
	return d == Min || d == Mid || d == Max
}

func (d ErrorDirection) String() string {
	switch d {
	case Min:
		return "MIN"
	case Mid:
		return "MID"
	case Max:
		return "MAX"
	default:
		return fmt.Sprintf("ErrorDirection(%d)", int(d))
	}
}
