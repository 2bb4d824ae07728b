package sequence

import (
	"encoding/json"
	"fmt"
)

// Direction is the order in which the player must re-enter a sequence.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

var directionNames = map[Direction]string{
	Forward: "forward",
	Reverse: "reverse",
}

var directionFromName = map[string]Direction{
	"forward": Forward,
	"reverse": Reverse,
}

func (d Direction) String() string {
	if s, ok := directionNames[d]; ok {
		return s
	}
	return "unknown"
}

// Label is the short upper-case name shown in the status bar.
func (d Direction) Label() string {
	switch d {
	case Forward:
		return "FORWARD"
	case Reverse:
		return "REVERSE"
	default:
		return "?"
	}
}

// ParseDirection is the inverse of String.
func ParseDirection(s string) (Direction, error) {
	if d, ok := directionFromName[s]; ok {
		return d, nil
	}
	return Forward, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ExpectedIndex maps the 1-based count of entered symbols to the index of
// target that the latest entry must match.
func (d Direction) ExpectedIndex(entered, length int) int {
	if d == Reverse {
		return length - entered
	}
	return entered - 1
}

// Position maps a 0-based input position to its target index.
func (d Direction) Position(i, length int) int {
	if d == Reverse {
		return length - 1 - i
	}
	return i
}
