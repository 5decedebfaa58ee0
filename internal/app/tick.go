package app

import (
	"time"

	"github.com/ayusman/rpsmood/internal/detector"
	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/gesture"
	"github.com/ayusman/rpsmood/internal/landmark"
	"github.com/ayusman/rpsmood/internal/round"
)

// Session is the in-memory game state. It lives for the process lifetime.
type Session struct {
	Seq     uint64
	Round   round.Round
	Score   game.ScoreBoard
	Overlay bool
}

// Perception is what one frame told us about the player.
type Perception struct {
	At        time.Time
	Detection detector.Detection
	Gesture   gesture.Gesture
	Emotion   emotion.Reading
}

// Perceive classifies a detection.
func Perceive(det detector.Detection, at time.Time, emotions *emotion.Classifier) Perception {
	return Perception{
		At:        at,
		Detection: det,
		Gesture:   gesture.ClassifyFirst(det.Hands),
		Emotion:   emotions.Classify(det.Face),
	}
}

// FrameResult is the per-tick output handed to presentation.
type FrameResult struct {
	Seq         uint64            `json:"seq"`
	At          time.Time         `json:"at"`
	State       round.State       `json:"state"`
	Remaining   int               `json:"remaining"`
	FacePresent bool              `json:"face_present"`
	HandCount   int               `json:"hand_count"`
	Gesture     gesture.Gesture   `json:"gesture"`
	Emotion     emotion.Reading   `json:"emotion"`
	Score       game.ScoreBoard   `json:"score"`
	Result      *game.RoundResult `json:"result,omitempty"`
	// JustResolved is set on the single frame whose tick resolved the round.
	JustResolved bool `json:"just_resolved"`
	Overlay      bool `json:"overlay"`

	// Raw landmarks, only when the overlay is on.
	Hands []landmark.HandLandmarks `json:"hands,omitempty"`
	Face  *landmark.FaceLandmarks  `json:"face,omitempty"`
}

// Tick advances the session by one perceived frame.
func Tick(s Session, p Perception, m *round.Machine) (Session, FrameResult) {
	prev := s.Round.State

	s.Seq++
	s.Round, s.Score = m.Step(s.Round, s.Score, round.Input{
		Now:          p.At,
		FaceDetected: p.Detection.FacePresent,
		Gesture:      p.Gesture,
		Emotion:      p.Emotion,
	})

	fr := FrameResult{
		Seq:          s.Seq,
		At:           p.At,
		State:        s.Round.State,
		Remaining:    s.Round.Remaining,
		FacePresent:  p.Detection.FacePresent,
		HandCount:    len(p.Detection.Hands),
		Gesture:      p.Gesture,
		Emotion:      p.Emotion,
		Score:        s.Score,
		Result:       s.Round.Result,
		JustResolved: prev != round.Resolved && s.Round.State == round.Resolved,
		Overlay:      s.Overlay,
	}
	if s.Overlay {
		fr.Hands = p.Detection.Hands
		fr.Face = p.Detection.Face
	}

	return s, fr
}

// Apply returns the session after a control command. Quit leaves it unchanged.
func (s Session) Apply(cmd Command) Session {
	switch cmd {
	case CmdRestartRound:
		s.Round = s.Round.Restart()
	case CmdToggleLandmarkOverlay:
		s.Overlay = !s.Overlay
	}
	return s
}
