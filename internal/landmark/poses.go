package landmark

// HandPose builds a mirrored right hand with each finger either extended or
// curled. The thumb is extended when its tip lies left of its IP joint; the
// other fingers are extended when the tip lies above the PIP joint.
func HandPose(thumb, index, middle, ring, pinky bool) HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80}

	h.Points[ThumbCMC] = Point3D{X: 0.45, Y: 0.75}
	h.Points[ThumbMCP] = Point3D{X: 0.42, Y: 0.70}
	h.Points[ThumbIP] = Point3D{X: 0.40, Y: 0.66}
	if thumb {
		h.Points[ThumbTip] = Point3D{X: 0.36, Y: 0.62}
	} else {
		h.Points[ThumbTip] = Point3D{X: 0.45, Y: 0.66, Z: -0.02}
	}

	setFinger(&h, IndexMCP, 0.45, 0.62, index)
	setFinger(&h, MiddleMCP, 0.50, 0.61, middle)
	setFinger(&h, RingMCP, 0.55, 0.62, ring)
	setFinger(&h, PinkyMCP, 0.60, 0.64, pinky)

	return h
}

// setFinger lays out MCP, PIP, DIP and tip starting at the given MCP index.
func setFinger(h *HandLandmarks, mcp int, x, y float64, extended bool) {
	h.Points[mcp] = Point3D{X: x, Y: y}
	if extended {
		h.Points[mcp+1] = Point3D{X: x, Y: y - 0.08}
		h.Points[mcp+2] = Point3D{X: x, Y: y - 0.14}
		h.Points[mcp+3] = Point3D{X: x, Y: y - 0.19}
		return
	}
	h.Points[mcp+1] = Point3D{X: x, Y: y - 0.05, Z: -0.04}
	h.Points[mcp+2] = Point3D{X: x - 0.01, Y: y - 0.02, Z: -0.05}
	h.Points[mcp+3] = Point3D{X: x - 0.01, Y: y + 0.01, Z: -0.03}
}

// RockLandmarks returns a closed fist.
func RockLandmarks() HandLandmarks {
	return HandPose(false, false, false, false, false)
}

// PaperLandmarks returns an open palm.
func PaperLandmarks() HandLandmarks {
	return HandPose(true, true, true, true, true)
}

// ScissorsLandmarks returns index and middle fingers extended.
func ScissorsLandmarks() HandLandmarks {
	return HandPose(false, true, true, false, false)
}

// FaceShape describes an expression in terms of the measurements the
// emotion rules read. Widths are fixed: mouth 0.12, each eye 0.06.
type FaceShape struct {
	// CornerY is the vertical position of both mouth corners.
	CornerY float64
	// UpperLipY and LowerLipY are the lip center positions.
	UpperLipY float64
	LowerLipY float64
	// EyeHeight is the lid gap of both eyes.
	EyeHeight float64
	// BrowGap is the distance from brow inner point to eye top.
	BrowGap float64
}

// Mouth and eye widths used by FaceFromShape.
const (
	ShapeMouthWidth = 0.12
	ShapeEyeWidth   = 0.06
)

// FaceFromShape builds a refined face mesh whose named points realise shape.
// Unnamed points sit at the face center.
func FaceFromShape(shape FaceShape) *FaceLandmarks {
	points := make([]Point3D, NumRefinedFaceLandmarks)
	for i := range points {
		points[i] = Point3D{X: 0.5, Y: 0.55}
	}

	points[MouthLeft] = Point3D{X: 0.5 - ShapeMouthWidth/2, Y: shape.CornerY}
	points[MouthRight] = Point3D{X: 0.5 + ShapeMouthWidth/2, Y: shape.CornerY}
	points[UpperLip] = Point3D{X: 0.5, Y: shape.UpperLipY}
	points[LowerLip] = Point3D{X: 0.5, Y: shape.LowerLipY}
	points[LipTop] = Point3D{X: 0.5, Y: shape.UpperLipY + 0.002}
	points[LipBottom] = Point3D{X: 0.5, Y: shape.LowerLipY - 0.002}

	const eyeY = 0.45
	top := eyeY - shape.EyeHeight/2
	bottom := eyeY + shape.EyeHeight/2

	points[LeftEyeOuter] = Point3D{X: 0.36, Y: eyeY}
	points[LeftEyeInner] = Point3D{X: 0.36 + ShapeEyeWidth, Y: eyeY}
	points[LeftEyeTop] = Point3D{X: 0.39, Y: top}
	points[LeftEyeBottom] = Point3D{X: 0.39, Y: bottom}

	points[RightEyeInner] = Point3D{X: 0.58, Y: eyeY}
	points[RightEyeOuter] = Point3D{X: 0.58 + ShapeEyeWidth, Y: eyeY}
	points[RightEyeTop] = Point3D{X: 0.61, Y: top}
	points[RightEyeBottom] = Point3D{X: 0.61, Y: bottom}

	points[LeftBrowInner] = Point3D{X: 0.41, Y: top - shape.BrowGap}
	points[LeftBrowOuter] = Point3D{X: 0.35, Y: top - shape.BrowGap + 0.01}
	points[RightBrowInner] = Point3D{X: 0.59, Y: top - shape.BrowGap}
	points[RightBrowOuter] = Point3D{X: 0.65, Y: top - shape.BrowGap + 0.01}

	return &FaceLandmarks{Points: points}
}

// NeutralFace returns a relaxed face that matches none of the expressions.
func NeutralFace() *FaceLandmarks {
	return FaceFromShape(FaceShape{
		CornerY:   0.700,
		UpperLipY: 0.695,
		LowerLipY: 0.705,
		EyeHeight: 0.012,
		BrowGap:   0.025,
	})
}

// SmilingFace returns raised mouth corners: smile curve -0.004.
func SmilingFace() *FaceLandmarks {
	return FaceFromShape(FaceShape{
		CornerY:   0.70552,
		UpperLipY: 0.700,
		LowerLipY: 0.712,
		EyeHeight: 0.012,
		BrowGap:   0.025,
	})
}

// FrowningFace returns lowered mouth corners: smile curve 0.003.
func FrowningFace() *FaceLandmarks {
	return FaceFromShape(FaceShape{
		CornerY:   0.70036,
		UpperLipY: 0.695,
		LowerLipY: 0.705,
		EyeHeight: 0.012,
		BrowGap:   0.025,
	})
}

// SurprisedFace returns an open mouth, wide eyes and raised brows. Its
// corners also sit above the lip center, so it satisfies the smile rule too.
func SurprisedFace() *FaceLandmarks {
	return FaceFromShape(FaceShape{
		CornerY:   0.700,
		UpperLipY: 0.690,
		LowerLipY: 0.720,
		EyeHeight: 0.018,
		BrowGap:   0.040,
	})
}

// SleepyFace returns nearly closed eyes: eye aspect ratio 0.1.
func SleepyFace() *FaceLandmarks {
	return FaceFromShape(FaceShape{
		CornerY:   0.700,
		UpperLipY: 0.695,
		LowerLipY: 0.705,
		EyeHeight: 0.006,
		BrowGap:   0.025,
	})
}
