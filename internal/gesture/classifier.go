package gesture

import (
	"github.com/ayusman/rpsmood/internal/landmark"
)

// Fingers holds the extended flag of each finger, thumb first.
type Fingers [5]bool

// Finger positions within Fingers.
const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky
)

// patterns maps the recognized finger configurations to gestures.
var patterns = map[Fingers]Gesture{
	{false, false, false, false, false}: Rock,
	{true, true, true, true, true}:      Paper,
	{false, true, true, false, false}:   Scissors,
}

// fingerTips lists the tip landmark of each non-thumb finger.
var fingerTips = [4]int{landmark.IndexTip, landmark.MiddleTip, landmark.RingTip, landmark.PinkyTip}

// FingerStates computes which fingers are extended.
//
// The thumb moves sideways, so it counts as extended when its tip lies left
// of the IP joint in the mirrored frame. The other fingers count as extended
// when the tip is above the joint two positions back (the PIP), with y
// growing downward.
func FingerStates(hand *landmark.HandLandmarks) Fingers {
	var f Fingers
	p := &hand.Points

	f[Thumb] = p[landmark.ThumbTip].X < p[landmark.ThumbIP].X
	for i, tip := range fingerTips {
		f[Index+i] = p[tip].Y < p[tip-2].Y
	}

	return f
}

// FromFingers returns the gesture for a finger pattern, or None.
func FromFingers(f Fingers) Gesture {
	return patterns[f]
}

// Classify returns the gesture shown by hand. A nil hand or an unknown
// finger pattern yields None; the caller waits for another frame.
func Classify(hand *landmark.HandLandmarks) Gesture {
	if hand == nil {
		return None
	}
	return FromFingers(FingerStates(hand))
}

// ClassifyFirst classifies the first hand only; additional hands are ignored.
func ClassifyFirst(hands []landmark.HandLandmarks) Gesture {
	if len(hands) == 0 {
		return None
	}
	return Classify(&hands[0])
}
