package app

import (
	"errors"
	"fmt"
)

// Command is a control request from the player or a presentation surface.
type Command string

const (
	CmdRestartRound          Command = "restart-round"
	CmdQuit                  Command = "quit"
	CmdToggleLandmarkOverlay Command = "toggle-landmark-overlay"
)

// Commands lists every accepted command.
var Commands = []Command{CmdRestartRound, CmdQuit, CmdToggleLandmarkOverlay}

var (
	// ErrUnknownCommand is returned for commands outside Commands.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrCommandQueueFull is returned when commands arrive faster than ticks drain them.
	ErrCommandQueueFull = errors.New("command queue full")
)

// ParseCommand validates a command name.
func ParseCommand(s string) (Command, error) {
	for _, c := range Commands {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, s)
}
