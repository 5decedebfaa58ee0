package emotion

import "math"

// Rule pairs a predicate over Metrics with the label and confidence it yields.
type Rule struct {
	Emotion    Emotion
	Match      func(Metrics) bool
	Confidence func(Metrics) float64
}

// Thresholds tuned against MediaPipe face mesh output. They must not drift.
const (
	surprisedOpenness = 0.15
	surprisedLipDrop  = 0.02
	surprisedEyeRatio = 0.25
	surprisedBrow     = 0.03

	happyCurve    = -0.003
	happyOpenness = 0.05

	sadCurve = 0.002

	sleepyEyeRatio = 0.15
	sleepyBaseline = 0.2

	curveGain       = 200
	sleepyGain      = 3
	surprisedGain   = 2
	neutralFallback = 0.6
)

// DefaultRules is the ordered decision list; the first match wins.
var DefaultRules = []Rule{
	{
		Emotion: Surprised,
		Match: func(m Metrics) bool {
			return m.MouthOpenness > surprisedOpenness &&
				m.LowerLipDrop > surprisedLipDrop &&
				m.EyeAspectRatio > surprisedEyeRatio &&
				m.BrowHeight > surprisedBrow
		},
		Confidence: func(m Metrics) float64 {
			return math.Min((m.MouthOpenness+m.EyeAspectRatio+m.BrowHeight)*surprisedGain, 1.0)
		},
	},
	{
		Emotion: Happy,
		Match: func(m Metrics) bool {
			return m.SmileCurve < happyCurve && m.MouthOpenness > happyOpenness
		},
		Confidence: func(m Metrics) float64 {
			return math.Min(math.Abs(m.SmileCurve)*curveGain, 1.0)
		},
	},
	{
		Emotion: Sad,
		Match: func(m Metrics) bool {
			return m.SmileCurve > sadCurve
		},
		Confidence: func(m Metrics) float64 {
			return math.Min(m.SmileCurve*curveGain, 1.0)
		},
	},
	{
		Emotion: Sleepy,
		Match: func(m Metrics) bool {
			return m.EyeAspectRatio < sleepyEyeRatio
		},
		Confidence: func(m Metrics) float64 {
			return math.Min((sleepyBaseline-m.EyeAspectRatio)*sleepyGain, 1.0)
		},
	},
}
