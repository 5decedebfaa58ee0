package landmark

import "fmt"

// Face mesh landmark indices used for expression metrics.
// See: https://github.com/google-ai-edge/mediapipe/blob/master/mediapipe/modules/face_geometry/data/canonical_face_model_uv_visualization.png
//
// LipTop, LipBottom and the outer brow points are not read by Features.
// They are kept for reference and FaceFromShape places them so synthetic
// meshes stay anatomically ordered.
const (
	MouthLeft        = 61
	MouthRight       = 291
	LipTop           = 13
	LipBottom        = 14
	UpperLip         = 12
	LowerLip         = 15
	LeftEyeTop       = 159
	LeftEyeBottom    = 145
	LeftEyeInner     = 133
	LeftEyeOuter     = 33
	RightEyeTop      = 386
	RightEyeBottom   = 374
	RightEyeInner    = 362
	RightEyeOuter    = 263
	LeftBrowInner    = 70
	LeftBrowOuter    = 107
	RightBrowInner   = 300
	RightBrowOuter   = 336
	NumFaceLandmarks = 468
	// NumRefinedFaceLandmarks includes the ten iris points added when the
	// mesh runs with refined landmarks.
	NumRefinedFaceLandmarks = 478
)

// FaceLandmarks is the dense face mesh of one face.
type FaceLandmarks struct {
	Points []Point3D `json:"points"`
}

// NewFaceLandmarks validates the mesh size and wraps the points.
func NewFaceLandmarks(points []Point3D) (*FaceLandmarks, error) {
	if len(points) != NumFaceLandmarks && len(points) != NumRefinedFaceLandmarks {
		return nil, fmt.Errorf("face mesh has %d points, want %d or %d: %w",
			len(points), NumFaceLandmarks, NumRefinedFaceLandmarks, ErrMalformedLandmarks)
	}
	return &FaceLandmarks{Points: points}, nil
}

// Eye holds the four points describing one eye opening.
type Eye struct {
	Top, Bottom, Inner, Outer Point3D
}

// FaceFeatures is the named subset of the mesh the expression rules read.
type FaceFeatures struct {
	MouthLeft  Point3D
	MouthRight Point3D
	UpperLip   Point3D
	LowerLip   Point3D

	LeftEye  Eye
	RightEye Eye

	LeftBrowInner  Point3D
	RightBrowInner Point3D
}

// Features resolves the named landmarks. The mesh must have been built with
// NewFaceLandmarks or otherwise hold at least NumFaceLandmarks points.
func (f *FaceLandmarks) Features() FaceFeatures {
	p := f.Points
	return FaceFeatures{
		MouthLeft:  p[MouthLeft],
		MouthRight: p[MouthRight],
		UpperLip:   p[UpperLip],
		LowerLip:   p[LowerLip],
		LeftEye: Eye{
			Top:    p[LeftEyeTop],
			Bottom: p[LeftEyeBottom],
			Inner:  p[LeftEyeInner],
			Outer:  p[LeftEyeOuter],
		},
		RightEye: Eye{
			Top:    p[RightEyeTop],
			Bottom: p[RightEyeBottom],
			Inner:  p[RightEyeInner],
			Outer:  p[RightEyeOuter],
		},
		LeftBrowInner:  p[LeftBrowInner],
		RightBrowInner: p[RightBrowInner],
	}
}
