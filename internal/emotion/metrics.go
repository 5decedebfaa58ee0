package emotion

import (
	"github.com/ayusman/rpsmood/internal/landmark"
)

// Metrics are the per-frame measurements the rules are written against.
// Ratios whose denominator is zero are reported as 0.
type Metrics struct {
	MouthWidth  float64
	MouthHeight float64
	// MouthOpenness is MouthHeight / MouthWidth.
	MouthOpenness float64
	// LowerLipDrop is how far the lower lip sits from the corner line, per mouth width.
	LowerLipDrop float64
	// SmileCurve is negative when the corners sit above the lip center.
	SmileCurve float64
	// EyeAspectRatio is mean eye height over mean eye width.
	EyeAspectRatio float64
	// BrowHeight is the mean gap between brow inner point and eye top.
	BrowHeight float64
}

// Measure derives Metrics from the named face features.
func Measure(f landmark.FaceFeatures) Metrics {
	var m Metrics

	m.MouthWidth = landmark.HorizontalGap(f.MouthRight, f.MouthLeft)
	m.MouthHeight = landmark.VerticalGap(f.UpperLip, f.LowerLip)
	m.MouthOpenness = landmark.Ratio(m.MouthHeight, m.MouthWidth)

	mouthCenterY := (f.MouthLeft.Y + f.MouthRight.Y) / 2
	lipCenterY := (f.UpperLip.Y + f.LowerLip.Y) / 2
	m.LowerLipDrop = landmark.Ratio(landmark.VerticalGap(f.LowerLip, landmark.Point3D{Y: mouthCenterY}), m.MouthWidth)
	m.SmileCurve = landmark.Ratio(mouthCenterY-lipCenterY, m.MouthWidth)

	eyeHeight := (eyeHeight(f.LeftEye) + eyeHeight(f.RightEye)) / 2
	eyeWidth := (eyeWidth(f.LeftEye) + eyeWidth(f.RightEye)) / 2
	m.EyeAspectRatio = landmark.Ratio(eyeHeight, eyeWidth)

	m.BrowHeight = (landmark.VerticalGap(f.LeftBrowInner, f.LeftEye.Top) +
		landmark.VerticalGap(f.RightBrowInner, f.RightEye.Top)) / 2

	return m
}

func eyeHeight(e landmark.Eye) float64 {
	return landmark.VerticalGap(e.Top, e.Bottom)
}

func eyeWidth(e landmark.Eye) float64 {
	return landmark.HorizontalGap(e.Outer, e.Inner)
}
