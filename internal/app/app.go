// Package app runs the per-frame game loop: capture, detect, classify, step
// the round and publish the result.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/rpsmood/internal/capture"
	"github.com/ayusman/rpsmood/internal/detector"
	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/round"
)

// Loop constants.
const (
	// CommandQueueSize bounds pending commands between ticks.
	CommandQueueSize = 16
	// HistoryTimeout bounds a single history write.
	HistoryTimeout = 2 * time.Second
)

// Config holds the collaborators of an App. Only Camera and Detector are
// needed by Run; Process works without them.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Machine  *round.Machine
	Emotions *emotion.Classifier
	History  History
	Log      logrus.FieldLogger
	// Stream keeps the latest frame JPEG-encoded for the MJPEG endpoint.
	Stream bool
	// Overlay starts with the landmark overlay on.
	Overlay bool
	// Now is the clock used by Run. Defaults to time.Now.
	Now func() time.Time
}

// App is the game process: one session, one loop.
type App struct {
	config   Config
	machine  *round.Machine
	emotions *emotion.Classifier
	log      logrus.FieldLogger
	now      func() time.Time

	commands chan Command

	mu          sync.RWMutex
	session     Session
	latest      FrameResult
	jpeg        []byte
	subscribers map[int]func(FrameResult)
	nextSubID   int
}

// New creates an App. Missing collaborators take defaults: a three second
// countdown with a random computer, the default emotion rules and a discard
// logger.
func New(config Config) *App {
	if config.Machine == nil {
		config.Machine = round.NewMachine(round.DefaultConfig(), nil, nil)
	}
	if config.Emotions == nil {
		config.Emotions = emotion.NewClassifier()
	}
	if config.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		config.Log = l
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	a := &App{
		config:      config,
		machine:     config.Machine,
		emotions:    config.Emotions,
		log:         config.Log,
		now:         config.Now,
		commands:    make(chan Command, CommandQueueSize),
		session:     Session{Overlay: config.Overlay},
		subscribers: make(map[int]func(FrameResult)),
	}
	a.latest = FrameResult{State: round.Idle, Overlay: config.Overlay}
	return a
}

// Send queues a command for the next tick. It never blocks.
func (a *App) Send(cmd Command) error {
	if _, err := ParseCommand(string(cmd)); err != nil {
		return err
	}
	select {
	case a.commands <- cmd:
		return nil
	default:
		return ErrCommandQueueFull
	}
}

// Process runs one tick on an already detected frame. Pending commands are
// applied first; a pending quit is consumed but only Run acts on it.
func (a *App) Process(det detector.Detection, now time.Time) FrameResult {
	a.drainCommands()
	return a.tick(det, now)
}

// Snapshot returns the most recently published frame.
func (a *App) Snapshot() FrameResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.latest
}

// Score returns the current scoreboard.
func (a *App) Score() game.ScoreBoard {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Score
}

// LatestJPEG returns the last encoded frame, or nil when streaming is off or
// no frame has been captured yet.
func (a *App) LatestJPEG() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.jpeg
}

// Subscribe registers fn for every published frame and returns a function
// that removes it. fn runs on the loop goroutine and must not block.
func (a *App) Subscribe(fn func(FrameResult)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextSubID
	a.nextSubID++
	a.subscribers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subscribers, id)
		a.mu.Unlock()
	}
}

// drainCommands applies every pending command and reports whether quit was seen.
func (a *App) drainCommands() (quit bool) {
	for {
		select {
		case cmd := <-a.commands:
			if cmd == CmdQuit {
				quit = true
				continue
			}
			a.mu.Lock()
			a.session = a.session.Apply(cmd)
			overlay := a.session.Overlay
			a.mu.Unlock()
			a.log.WithFields(logrus.Fields{"command": cmd, "overlay": overlay}).Info("command applied")
		default:
			return quit
		}
	}
}

func (a *App) tick(det detector.Detection, now time.Time) FrameResult {
	p := Perceive(det, now, a.emotions)

	a.mu.Lock()
	prev := a.session.Round
	var fr FrameResult
	a.session, fr = Tick(a.session, p, a.machine)
	a.latest = fr
	subs := make([]func(FrameResult), 0, len(a.subscribers))
	for _, fn := range a.subscribers {
		subs = append(subs, fn)
	}
	a.mu.Unlock()

	if prev.State != fr.State {
		a.log.WithFields(logrus.Fields{
			"from":      prev.State,
			"to":        fr.State,
			"remaining": fr.Remaining,
		}).Debug("round transition")
	}
	if fr.JustResolved {
		a.onResolved(fr)
	}

	for _, fn := range subs {
		fn(fr)
	}
	return fr
}

func (a *App) onResolved(fr FrameResult) {
	r := fr.Result
	a.log.WithFields(logrus.Fields{
		"round":    r.ID,
		"player":   r.Player,
		"computer": r.Computer,
		"outcome":  r.Outcome,
		"emotion":  r.Emotion.Emotion,
		"score":    fmt.Sprintf("%d-%d", fr.Score.Player, fr.Score.Computer),
	}).Info("round resolved")

	if a.config.History == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), HistoryTimeout)
	defer cancel()
	if err := a.config.History.RecordRound(ctx, *r, fr.Score); err != nil {
		a.log.WithError(err).WithField("round", r.ID).Warn("failed to record round")
	}
}
