// Package emotion estimates a coarse facial expression from one face mesh.
//
// Each frame is classified on its own. Labels may flicker between
// consecutive frames; no smoothing is applied.
package emotion

// Emotion is a coarse facial affect label.
type Emotion string

const (
	Neutral   Emotion = "neutral"
	Happy     Emotion = "happy"
	Sad       Emotion = "sad"
	Surprised Emotion = "surprised"
	Sleepy    Emotion = "sleepy"
)

// All lists every label, fallback last.
var All = [5]Emotion{Happy, Sad, Surprised, Sleepy, Neutral}

// Reading is a label with its confidence in [0,1].
type Reading struct {
	Emotion    Emotion `json:"emotion"`
	Confidence float64 `json:"confidence"`
}

// NoFace is the reading reported when no face mesh is available.
var NoFace = Reading{Emotion: Neutral, Confidence: 0}
