// Package gesture classifies a single hand pose into a rock-paper-scissors move.
package gesture

import "fmt"

// Gesture is a recognized hand shape.
type Gesture string

const (
	// None means no known shape was recognized this frame.
	None     Gesture = ""
	Rock     Gesture = "rock"
	Paper    Gesture = "paper"
	Scissors Gesture = "scissors"
)

// All lists the playable gestures in a fixed order.
var All = [3]Gesture{Rock, Paper, Scissors}

// Valid reports whether g is one of the three playable gestures.
func (g Gesture) Valid() bool {
	switch g {
	case Rock, Paper, Scissors:
		return true
	}
	return false
}

// Beats reports whether g defeats other.
func (g Gesture) Beats(other Gesture) bool {
	switch g {
	case Rock:
		return other == Scissors
	case Scissors:
		return other == Paper
	case Paper:
		return other == Rock
	}
	return false
}

// String returns the lowercase name, or "none".
func (g Gesture) String() string {
	if g == None {
		return "none"
	}
	return string(g)
}

// Parse converts a name into a Gesture.
func Parse(s string) (Gesture, error) {
	g := Gesture(s)
	if !g.Valid() {
		return None, fmt.Errorf("unknown gesture %q", s)
	}
	return g, nil
}
