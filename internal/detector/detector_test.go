package detector

import (
	"errors"
	"testing"

	"github.com/ayusman/rpsmood/internal/landmark"
)

func TestParseResponse(t *testing.T) {
	t.Run("hands and face", func(t *testing.T) {
		line := `{"hands":[{"points":[` + repeatPoint(landmark.NumLandmarks) + `],"handedness":"Right","score":0.9}],` +
			`"face":{"points":[` + repeatPoint(landmark.NumFaceLandmarks) + `]},"face_present":true}`

		det, err := parseResponse([]byte(line))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(det.Hands) != 1 {
			t.Fatalf("expected 1 hand, got %d", len(det.Hands))
		}
		if det.Face == nil || len(det.Face.Points) != landmark.NumFaceLandmarks {
			t.Fatal("expected face mesh to be decoded")
		}
		if !det.FacePresent {
			t.Error("expected face_present to be true")
		}
	})

	t.Run("empty frame", func(t *testing.T) {
		det, err := parseResponse([]byte(`{"hands":[],"face":null,"face_present":false}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if det.FirstHand() != nil || det.Face != nil || det.FacePresent {
			t.Errorf("expected empty detection, got %+v", det)
		}
	})

	t.Run("short hand is rejected", func(t *testing.T) {
		line := `{"hands":[{"points":[` + repeatPoint(5) + `]}]}`
		if _, err := parseResponse([]byte(line)); !errors.Is(err, landmark.ErrMalformedLandmarks) {
			t.Errorf("expected landmark.ErrMalformedLandmarks, got %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		if _, err := parseResponse([]byte("not json")); err == nil {
			t.Error("expected error for invalid json")
		}
	})
}

func repeatPoint(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += `{"x":0.5,"y":0.5,"z":0}`
	}
	return s
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty detection by default", func(t *testing.T) {
		mock := NewMockDetector()

		det, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if det.Hands != nil || det.Face != nil || det.FacePresent {
			t.Errorf("expected empty detection, got %+v", det)
		}
	})

	t.Run("returns configured hands and face", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]landmark.HandLandmarks{landmark.RockLandmarks(), landmark.PaperLandmarks()})
		mock.SetFace(landmark.NeutralFace())

		det, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(det.Hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(det.Hands))
		}
		if !det.FacePresent || det.Face == nil {
			t.Error("expected face to be present")
		}
		if mock.Calls() != 1 {
			t.Errorf("expected 1 call, got %d", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		_, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		if err := NewMockDetector().Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
	})
}
