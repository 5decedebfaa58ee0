package detector

import "gocv.io/x/gocv"

// Detector defines the interface for landmark detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the hands and face found.
	// An empty Detection is a valid result.
	Detect(frame *gocv.Mat) (Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for landmark detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int `json:"max_hands"`

	// MaxFaces is the maximum number of face meshes to track (default: 1).
	MaxFaces int `json:"max_faces"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `json:"min_confidence"`

	// RefineLandmarks enables the iris points on the face mesh.
	RefineLandmarks bool `json:"refine_landmarks"`

	// ScriptPath overrides the sidecar script lookup.
	ScriptPath string `json:"-"`

	// PythonPath overrides the interpreter lookup.
	PythonPath string `json:"-"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MaxFaces:        1,
		MinConfidence:   0.7,
		RefineLandmarks: true,
	}
}
