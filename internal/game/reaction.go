package game

import (
	"github.com/ayusman/rpsmood/internal/emotion"
)

var reactions = map[emotion.Emotion]map[Outcome]string{
	emotion.Happy: {
		PlayerWin:   "Great! Your happiness helped you win!",
		ComputerWin: "Stay positive! Your smile is still winning!",
		Draw:        "Happy with the tie! Keep smiling!",
	},
	emotion.Sad: {
		PlayerWin:   "Cheer up! You won this round!",
		ComputerWin: "Don't be sad, try again!",
		Draw:        "A tie! Maybe that will cheer you up!",
	},
	emotion.Surprised: {
		PlayerWin:   "Surprise! You won!",
		ComputerWin: "Surprised by the loss? Try again!",
		Draw:        "Surprising tie!",
	},
	emotion.Sleepy: {
		PlayerWin:   "Even sleepy, you won!",
		ComputerWin: "Wake up for the next round!",
		Draw:        "Sleepy tie! Need some coffee?",
	},
	emotion.Neutral: {
		PlayerWin:   "Nice win!",
		ComputerWin: "Better luck next time!",
		Draw:        "It's a tie!",
	},
}

// Reaction returns the flavor message for an emotion and outcome.
// Unknown emotions use the neutral row; unknown outcomes echo the label.
func Reaction(e emotion.Emotion, o Outcome) string {
	row, ok := reactions[e]
	if !ok {
		row = reactions[emotion.Neutral]
	}
	if msg, ok := row[o]; ok {
		return msg
	}
	return o.Label()
}
