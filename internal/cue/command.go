package cue

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/rpsmood/internal/round"
)

// DefaultCommandTimeout bounds a single cue command.
const DefaultCommandTimeout = 2 * time.Second

// ErrNoCommand is returned when no audio command is known for the platform.
var ErrNoCommand = errors.New("no cue command for this platform")

// DefaultArgs returns the tone command for the current OS.
func DefaultArgs() ([]string, error) {
	return defaultArgs(runtime.GOOS)
}

func defaultArgs(goos string) ([]string, error) {
	switch goos {
	case "linux":
		return []string{"play", "-nq", "-t", "alsa", "synth", "0.2", "sine", "1000"}, nil
	case "darwin":
		return []string{"afplay", "/System/Library/Sounds/Tink.aiff"}, nil
	case "windows":
		return []string{"powershell", "-NoProfile", "-Command", "[console]::beep(1000,200)"}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoCommand, goos)
}

// Command plays a cue by running an external program. Each run is started in
// the background and killed after the timeout. A cue that arrives while the
// previous one is still playing is dropped.
type Command struct {
	args    []string
	timeout time.Duration
	log     logrus.FieldLogger

	busy atomic.Bool
	wg   sync.WaitGroup
}

// NewCommand creates a Command running args. Empty args select DefaultArgs.
func NewCommand(args []string, timeout time.Duration, log logrus.FieldLogger) (*Command, error) {
	if len(args) == 0 {
		def, err := DefaultArgs()
		if err != nil {
			return nil, err
		}
		args = def
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if log == nil {
		log = discardLogger()
	}
	return &Command{args: args, timeout: timeout, log: log}, nil
}

// Signal starts the command without waiting for it.
func (c *Command) Signal(kind round.CueKind) {
	if !c.busy.CompareAndSwap(false, true) {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.busy.Store(false)

		if err := c.run(); err != nil {
			c.log.WithError(err).WithField("cue", kind).Warn("cue command failed")
		}
	}()
}

// Wait blocks until running commands finish.
func (c *Command) Wait() {
	c.wg.Wait()
}

func (c *Command) run() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("cue command timeout after %s", c.timeout)
	}
	if err != nil {
		if s := stderr.String(); s != "" {
			return fmt.Errorf("cue command failed: %w, stderr: %s", err, s)
		}
		return fmt.Errorf("cue command failed: %w", err)
	}
	return nil
}
