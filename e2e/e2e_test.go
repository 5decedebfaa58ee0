package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ayusman/rpsmood/internal/app"
	"github.com/ayusman/rpsmood/internal/cue"
	"github.com/ayusman/rpsmood/internal/detector"
	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/gesture"
	"github.com/ayusman/rpsmood/internal/landmark"
	"github.com/ayusman/rpsmood/internal/round"
	"github.com/ayusman/rpsmood/internal/server"
	"github.com/ayusman/rpsmood/internal/store"
)

type harness struct {
	app    *app.App
	det    *detector.MockDetector
	cues   *cue.Recorder
	ts     *httptest.Server
	client *http.Client
}

func newHarness(t *testing.T, computer gesture.Gesture) *harness {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "data.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	history, err := app.NewStoreHistory(context.Background(), s, time.Now())
	if err != nil {
		t.Fatalf("NewStoreHistory() error = %v", err)
	}

	cues := &cue.Recorder{}
	machine := round.NewMachine(round.DefaultConfig(), game.NewResolver(game.FixedPicker(computer)), cues)
	a := app.New(app.Config{Machine: machine, History: history})

	srv := server.New(server.Config{Game: a, Store: s, SessionID: history.SessionID()})
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})

	return &harness{app: a, det: detector.NewMockDetector(), cues: cues, ts: ts, client: ts.Client()}
}

// step feeds the mock detector's current output through one tick at now.
func (h *harness) step(t *testing.T, now time.Time) {
	t.Helper()
	det, err := h.det.Detect(nil)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	h.app.Process(det, now)
}

func (h *harness) state(t *testing.T) app.FrameResult {
	t.Helper()
	resp, err := h.client.Get(h.ts.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state error = %v", err)
	}
	defer resp.Body.Close()

	var fr app.FrameResult
	if err := json.NewDecoder(resp.Body).Decode(&fr); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return fr
}

func (h *harness) command(t *testing.T, cmd string) int {
	t.Helper()
	resp, err := h.client.Post(h.ts.URL+"/api/commands", "application/json",
		strings.NewReader(`{"command":"`+cmd+`"}`))
	if err != nil {
		t.Fatalf("POST /api/commands error = %v", err)
	}
	resp.Body.Close()
	return resp.StatusCode
}

func TestE2E_CompleteRound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	h := newHarness(t, gesture.Scissors)
	t0 := time.Now()

	t.Run("IdleWithoutFace", func(t *testing.T) {
		h.step(t, t0.Add(-time.Second))
		if fr := h.state(t); fr.State != round.Idle || fr.FacePresent {
			t.Errorf("state = %s face = %v, want idle without face", fr.State, fr.FacePresent)
		}
	})

	t.Run("FaceStartsCountdown", func(t *testing.T) {
		h.det.SetDetection(detector.Detection{Face: landmark.NeutralFace(), FacePresent: true})
		h.step(t, t0)

		fr := h.state(t)
		if fr.State != round.CountingDown || fr.Remaining != 3 {
			t.Errorf("state = %s remaining = %d, want counting_down 3", fr.State, fr.Remaining)
		}
		if h.cues.Count(round.CueCountdownStart) != 1 {
			t.Errorf("expected one start cue, got %v", h.cues.Kinds())
		}
	})

	t.Run("CountdownTicks", func(t *testing.T) {
		h.step(t, t0.Add(1500*time.Millisecond))

		fr := h.state(t)
		if fr.State != round.CountingDown || fr.Remaining != 2 {
			t.Errorf("state = %s remaining = %d, want counting_down 2", fr.State, fr.Remaining)
		}
		if h.cues.Count(round.CueTick) != 1 {
			t.Errorf("expected one tick cue, got %v", h.cues.Kinds())
		}
	})

	t.Run("RockBeatsScissors", func(t *testing.T) {
		h.det.SetDetection(detector.Detection{
			Hands:       []landmark.HandLandmarks{landmark.RockLandmarks()},
			Face:        landmark.SmilingFace(),
			FacePresent: true,
		})
		h.step(t, t0.Add(3100*time.Millisecond))

		fr := h.state(t)
		if fr.State != round.Resolved || fr.Result == nil {
			t.Fatalf("state = %s result = %v, want resolved", fr.State, fr.Result)
		}
		if fr.Result.Player != gesture.Rock || fr.Result.Computer != gesture.Scissors {
			t.Errorf("played %s vs %s", fr.Result.Player, fr.Result.Computer)
		}
		if fr.Result.Outcome != game.PlayerWin {
			t.Errorf("outcome = %s, want %s", fr.Result.Outcome, game.PlayerWin)
		}
		if fr.Result.Emotion.Emotion != emotion.Happy {
			t.Errorf("emotion = %s, want happy", fr.Result.Emotion.Emotion)
		}
		if want := game.Reaction(emotion.Happy, game.PlayerWin); fr.Result.Message != want {
			t.Errorf("message = %q, want %q", fr.Result.Message, want)
		}
		if fr.Score != (game.ScoreBoard{Player: 1, Computer: 0}) {
			t.Errorf("score = %+v, want 1-0", fr.Score)
		}
	})

	t.Run("ResolvedIsFrozen", func(t *testing.T) {
		h.det.SetDetection(detector.Detection{
			Hands:       []landmark.HandLandmarks{landmark.PaperLandmarks()},
			FacePresent: true,
		})
		h.step(t, t0.Add(10*time.Second))

		fr := h.state(t)
		if fr.State != round.Resolved || fr.Score.Player != 1 || fr.Score.Computer != 0 {
			t.Errorf("resolved round changed: state %s score %+v", fr.State, fr.Score)
		}
		if fr.Result == nil || fr.Result.Player != gesture.Rock {
			t.Errorf("result changed: %+v", fr.Result)
		}
	})

	t.Run("HistoryRecorded", func(t *testing.T) {
		resp, err := h.client.Get(h.ts.URL + "/api/rounds/stats")
		if err != nil {
			t.Fatalf("GET /api/rounds/stats error = %v", err)
		}
		defer resp.Body.Close()

		var stats store.Stats
		if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
			t.Fatalf("decode stats: %v", err)
		}
		if stats.Total != 1 || stats.PlayerWins != 1 || stats.ByEmotion["happy"] != 1 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("RestartKeepsScore", func(t *testing.T) {
		if code := h.command(t, "restart-round"); code != http.StatusAccepted {
			t.Fatalf("restart status = %d", code)
		}
		h.det.SetDetection(detector.Detection{})
		h.step(t, t0.Add(11*time.Second))

		fr := h.state(t)
		if fr.State != round.Idle || fr.Result != nil {
			t.Errorf("state = %s result = %v, want idle without result", fr.State, fr.Result)
		}
		if fr.Score.Player != 1 {
			t.Errorf("restart lost the score: %+v", fr.Score)
		}
	})
}

func TestE2E_CommandsOverHTTP(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	h := newHarness(t, gesture.Rock)

	tests := []struct {
		command string
		want    int
	}{
		{"toggle-landmark-overlay", http.StatusAccepted},
		{"dance", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			if code := h.command(t, tt.command); code != tt.want {
				t.Errorf("status = %d, want %d", code, tt.want)
			}
		})
	}

	h.det.SetDetection(detector.Detection{
		Hands:       []landmark.HandLandmarks{landmark.PaperLandmarks()},
		FacePresent: true,
	})
	h.step(t, time.Now())

	fr := h.state(t)
	if !fr.Overlay {
		t.Error("expected the overlay on after the toggle")
	}
	if len(fr.Hands) != 1 {
		t.Errorf("expected raw hand landmarks with the overlay on, got %d", len(fr.Hands))
	}
	if fr.HandCount != 1 || fr.Gesture != gesture.Paper {
		t.Errorf("hand count = %d gesture = %s", fr.HandCount, fr.Gesture)
	}
}
