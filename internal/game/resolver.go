package game

import (
	"math/rand/v2"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/gesture"
)

// Picker chooses the computer's gesture.
type Picker interface {
	Pick() gesture.Gesture
}

// RandomPicker draws uniformly from the three gestures.
type RandomPicker struct {
	rng *rand.Rand
}

// NewRandomPicker creates a RandomPicker. A nil rng uses the global source.
func NewRandomPicker(rng *rand.Rand) *RandomPicker {
	return &RandomPicker{rng: rng}
}

// Pick returns a uniformly random gesture.
func (p *RandomPicker) Pick() gesture.Gesture {
	if p.rng == nil {
		return gesture.All[rand.IntN(len(gesture.All))]
	}
	return gesture.All[p.rng.IntN(len(gesture.All))]
}

// FixedPicker always returns the same gesture.
type FixedPicker gesture.Gesture

// Pick returns the fixed gesture.
func (p FixedPicker) Pick() gesture.Gesture {
	return gesture.Gesture(p)
}

// RoundResult is a resolved round.
type RoundResult struct {
	ID         string          `json:"id"`
	Player     gesture.Gesture `json:"player"`
	Computer   gesture.Gesture `json:"computer"`
	Outcome    Outcome         `json:"outcome"`
	Emotion    emotion.Reading `json:"emotion"`
	Message    string          `json:"message"`
	ResolvedAt time.Time       `json:"resolved_at"`
}

// Resolver plays the computer's side of a round.
type Resolver struct {
	picker Picker
}

// NewResolver creates a Resolver. A nil picker draws at random.
func NewResolver(picker Picker) *Resolver {
	if picker == nil {
		picker = NewRandomPicker(nil)
	}
	return &Resolver{picker: picker}
}

// Play picks the computer's gesture, decides the round and selects the
// reaction for the player's current emotion.
func (r *Resolver) Play(player gesture.Gesture, reading emotion.Reading, at time.Time) RoundResult {
	computer := r.picker.Pick()
	outcome := Resolve(player, computer)

	return RoundResult{
		ID:         roundID(at),
		Player:     player,
		Computer:   computer,
		Outcome:    outcome,
		Emotion:    reading,
		Message:    Reaction(reading.Emotion, outcome),
		ResolvedAt: at,
	}
}

// roundID returns a ULID stamped with at. Times a ULID cannot carry, such as
// the zero time, are stamped with the current time instead.
func roundID(at time.Time) string {
	id, err := ulid.New(ulid.Timestamp(at), ulid.DefaultEntropy())
	if err != nil {
		return ulid.Make().String()
	}
	return id.String()
}
