// Package pathspec parses radgraph coordinate commands such as A2W2N5-45
// into ordered axis moves plus a payload value.
package pathspec

// Axis is one of the six movement symbols, or the root symbol.
type Axis byte

const (
	Ascend   Axis = 'A'
	Descend  Axis = 'D'
	North    Axis = 'N'
	South    Axis = 'S'
	East     Axis = 'E'
	West     Axis = 'W'
	Centroid Axis = 'C'
)

// Axes lists the six movement axes in link-slot order.
var Axes = [6]Axis{Ascend, Descend, North, South, East, West}

// Dimension groups an axis with its opposite.
type Dimension int

const (
	NoDimension Dimension = iota
	Vertical
	NorthSouth
	EastWest
)

func (d Dimension) String() string {
	switch d {
	case Vertical:
		return "vertical"
	case NorthSouth:
		return "north-south"
	case EastWest:
		return "east-west"
	default:
		return "none"
	}
}

// Valid reports whether a is one of the six movement axes.
func (a Axis) Valid() bool {
	return a.Slot() >= 0
}

// Slot returns the link slot index (0-5) for a, or -1 for anything that is
// not a movement axis.
func (a Axis) Slot() int {
	switch a {
	case Ascend:
		return 0
	case Descend:
		return 1
	case North:
		return 2
	case South:
		return 3
	case East:
		return 4
	case West:
		return 5
	default:
		return -1
	}
}

// Opposite returns the axis pointing the other way along the same dimension.
// Non-movement axes are returned unchanged.
func (a Axis) Opposite() Axis {
	switch a {
	case Ascend:
		return Descend
	case Descend:
		return Ascend
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return a
	}
}

// Dimension returns the dimension a moves along.
func (a Axis) Dimension() Dimension {
	switch a {
	case Ascend, Descend:
		return Vertical
	case North, South:
		return NorthSouth
	case East, West:
		return EastWest
	default:
		return NoDimension
	}
}

// positive reports whether a points in the positive direction of its dimension.
func (a Axis) positive() bool {
	return a == Ascend || a == North || a == East
}

// Name returns a lowercase human name for a.
func (a Axis) Name() string {
	switch a {
	case Ascend:
		return "ascend"
	case Descend:
		return "descend"
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	case Centroid:
		return "centroid"
	default:
		return "invalid"
	}
}

func (a Axis) String() string {
	return string(rune(a))
}

// MarshalText renders the axis letter so JSON shows "N" rather than 78.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte{byte(a)}, nil
}
