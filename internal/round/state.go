// Package round sequences one rock-paper-scissors round per face sighting:
// a countdown, gesture capture and a result held until restart.
package round

import "fmt"

// State is the phase of the current round.
type State int

const (
	// Idle waits for a face.
	Idle State = iota
	// CountingDown runs the countdown toward capture.
	CountingDown
	// Capturing waits, without timeout, for a recognized gesture.
	Capturing
	// Resolved holds the result until restart.
	Resolved
)

var stateNames = [...]string{
	Idle:         "idle",
	CountingDown: "counting_down",
	Capturing:    "capturing",
	Resolved:     "resolved",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown round state %q", b)
}
