package round

import (
	"time"

	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/gesture"
)

// CueKind identifies an audible cue.
type CueKind string

const (
	// CueCountdownStart fires once when a countdown begins.
	CueCountdownStart CueKind = "countdown_start"
	// CueTick fires whenever the whole-unit remaining count drops.
	CueTick CueKind = "tick"
)

// Cue signals the player. Implementations must not block the tick.
type Cue interface {
	Signal(kind CueKind)
}

// CueFunc adapts a function to Cue.
type CueFunc func(kind CueKind)

// Signal calls f.
func (f CueFunc) Signal(kind CueKind) { f(kind) }

// Default countdown settings.
const (
	DefaultDuration = 3 * time.Second
	DefaultUnit     = time.Second
)

// Config controls the countdown.
type Config struct {
	// Duration is how long the countdown runs before capture.
	Duration time.Duration
	// Unit is the granularity of the displayed countdown and tick cue.
	Unit time.Duration
}

// DefaultConfig returns a three second countdown counted in seconds.
func DefaultConfig() Config {
	return Config{Duration: DefaultDuration, Unit: DefaultUnit}
}

// Round is the round state. Machine.Step never mutates its argument.
// It is not serialized; presentation reads app.FrameResult.
type Round struct {
	State     State
	StartedAt time.Time
	// Remaining is the whole units left on the countdown.
	Remaining int
	// Result is the live result; set only in Resolved.
	Result *game.RoundResult
}

// Restart discards any countdown, capture or result.
func (r Round) Restart() Round {
	return Round{State: Idle}
}

// Input is one frame's worth of signals.
type Input struct {
	Now          time.Time
	FaceDetected bool
	Gesture      gesture.Gesture
	Emotion      emotion.Reading
}

// Machine advances rounds. It holds only configuration and collaborators.
type Machine struct {
	config   Config
	resolver *game.Resolver
	cue      Cue
}

// NewMachine creates a Machine. A nil cue is silent; a nil resolver picks at random.
func NewMachine(config Config, resolver *game.Resolver, cue Cue) *Machine {
	if config.Unit <= 0 {
		config.Unit = DefaultUnit
	}
	if config.Duration < 0 {
		config.Duration = 0
	}
	if resolver == nil {
		resolver = game.NewResolver(nil)
	}
	if cue == nil {
		cue = CueFunc(func(CueKind) {})
	}
	return &Machine{config: config, resolver: resolver, cue: cue}
}

// Config returns the countdown configuration in use.
func (m *Machine) Config() Config {
	return m.config
}

// Step advances r by one frame and returns the new round and score.
// Transitions may chain within a frame: a countdown that has already expired
// moves straight to capture, and a gesture seen that frame resolves it.
func (m *Machine) Step(r Round, score game.ScoreBoard, in Input) (Round, game.ScoreBoard) {
	if r.State == Idle && in.FaceDetected {
		r.State = CountingDown
		r.StartedAt = in.Now
		r.Remaining = m.remaining(0)
		m.cue.Signal(CueCountdownStart)
	}

	if r.State == CountingDown {
		elapsed := in.Now.Sub(r.StartedAt)
		if elapsed < m.config.Duration {
			if rem := m.remaining(elapsed); rem != r.Remaining {
				r.Remaining = rem
				m.cue.Signal(CueTick)
			}
			return r, score
		}
		r.State = Capturing
		r.Remaining = 0
	}

	if r.State == Capturing && in.Gesture.Valid() {
		result := m.resolver.Play(in.Gesture, in.Emotion, in.Now)
		r.State = Resolved
		r.Result = &result
		score = score.Record(result.Outcome)
	}

	return r, score
}

// remaining returns the whole countdown units left after elapsed.
func (m *Machine) remaining(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	return int(m.config.Duration/m.config.Unit) - int(elapsed/m.config.Unit)
}
