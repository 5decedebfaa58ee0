// Package game decides rock-paper-scissors rounds and keeps the score.
package game

import (
	"github.com/ayusman/rpsmood/internal/gesture"
)

// Outcome is the result of comparing the player's and computer's gestures.
type Outcome string

const (
	PlayerWin   Outcome = "player_win"
	ComputerWin Outcome = "computer_win"
	Draw        Outcome = "draw"
)

// Outcomes lists every outcome.
var Outcomes = [3]Outcome{PlayerWin, ComputerWin, Draw}

// Label is the headline shown to the player.
func (o Outcome) Label() string {
	switch o {
	case PlayerWin:
		return "You Win!"
	case ComputerWin:
		return "Computer Wins!"
	case Draw:
		return "Draw!"
	}
	return string(o)
}

// Resolve decides a round. It is total over the 3x3 gesture product.
func Resolve(player, computer gesture.Gesture) Outcome {
	switch {
	case player == computer:
		return Draw
	case player.Beats(computer):
		return PlayerWin
	default:
		return ComputerWin
	}
}

// ScoreBoard counts rounds won by each side.
type ScoreBoard struct {
	Player   int `json:"player"`
	Computer int `json:"computer"`
}

// Record returns the board after o. Draws leave it unchanged.
func (s ScoreBoard) Record(o Outcome) ScoreBoard {
	switch o {
	case PlayerWin:
		s.Player++
	case ComputerWin:
		s.Computer++
	}
	return s
}
