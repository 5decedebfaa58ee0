// Package cue provides audible signals for the round countdown.
package cue

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/rpsmood/internal/round"
)

// Nop ignores every cue.
type Nop struct{}

// Signal does nothing.
func (Nop) Signal(round.CueKind) {}

// Bell writes the terminal bell character for each cue.
type Bell struct {
	mu  sync.Mutex
	out io.Writer
	log logrus.FieldLogger
}

// NewBell creates a Bell writing to out.
func NewBell(out io.Writer, log logrus.FieldLogger) *Bell {
	if log == nil {
		log = discardLogger()
	}
	return &Bell{out: out, log: log}
}

// Signal writes BEL. Write errors are logged and dropped.
func (b *Bell) Signal(kind round.CueKind) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.out.Write([]byte{'\a'}); err != nil {
		b.log.WithError(err).WithField("cue", kind).Debug("bell write failed")
	}
}

// Recorder keeps every cue it receives.
type Recorder struct {
	mu    sync.Mutex
	kinds []round.CueKind
}

// Signal records kind.
func (r *Recorder) Signal(kind round.CueKind) {
	r.mu.Lock()
	r.kinds = append(r.kinds, kind)
	r.mu.Unlock()
}

// Kinds returns a copy of the recorded cues in order.
func (r *Recorder) Kinds() []round.CueKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]round.CueKind(nil), r.kinds...)
}

// Count returns how many times kind was recorded.
func (r *Recorder) Count(kind round.CueKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, k := range r.kinds {
		if k == kind {
			n++
		}
	}
	return n
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.kinds = nil
	r.mu.Unlock()
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
