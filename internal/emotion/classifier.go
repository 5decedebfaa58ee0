package emotion

import (
	"github.com/ayusman/rpsmood/internal/landmark"
)

// Classifier evaluates an ordered rule list against face metrics.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier using DefaultRules.
func NewClassifier() *Classifier {
	return &Classifier{rules: DefaultRules}
}

// NewClassifierWithRules creates a Classifier with a custom rule order.
func NewClassifierWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the reading for face. A nil face yields NoFace.
func (c *Classifier) Classify(face *landmark.FaceLandmarks) Reading {
	if face == nil {
		return NoFace
	}
	return c.ClassifyMetrics(Measure(face.Features()))
}

// ClassifyMetrics applies the rules in order and falls back to Neutral.
func (c *Classifier) ClassifyMetrics(m Metrics) Reading {
	for _, r := range c.rules {
		if r.Match(m) {
			return Reading{
				Emotion:    r.Emotion,
				Confidence: landmark.Clamp01(r.Confidence(m)),
			}
		}
	}
	return Reading{Emotion: Neutral, Confidence: neutralFallback}
}
