package detector

import "github.com/ayusman/rpsmood/internal/landmark"

// Detection is everything the sidecar found in one frame.
type Detection struct {
	Hands []landmark.HandLandmarks `json:"hands"`
	// Face is the dense mesh of the single tracked face, nil when none.
	Face *landmark.FaceLandmarks `json:"face,omitempty"`
	// FacePresent is the coarse face detector's verdict. It can be true
	// while Face is nil when the mesh model loses the face.
	FacePresent bool `json:"face_present"`
}

// FirstHand returns the first detected hand, or nil.
func (d Detection) FirstHand() *landmark.HandLandmarks {
	if len(d.Hands) == 0 {
		return nil
	}
	return &d.Hands[0]
}
