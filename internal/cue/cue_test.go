package cue

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/ayusman/rpsmood/internal/round"
)

var (
	_ round.Cue = Nop{}
	_ round.Cue = (*Bell)(nil)
	_ round.Cue = (*Recorder)(nil)
	_ round.Cue = (*Command)(nil)
)

func TestBell_Signal(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, nil)

	b.Signal(round.CueCountdownStart)
	b.Signal(round.CueTick)

	if got := buf.String(); got != "\a\a" {
		t.Errorf("expected two bells, got %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestBell_WriteError(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	NewBell(failingWriter{}, log).Signal(round.CueTick)

	if len(hook.Entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(hook.Entries))
	}
	if hook.LastEntry().Data["cue"] != round.CueTick {
		t.Errorf("expected cue field, got %v", hook.LastEntry().Data)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Signal(round.CueCountdownStart)
	r.Signal(round.CueTick)
	r.Signal(round.CueTick)

	kinds := r.Kinds()
	if len(kinds) != 3 || kinds[0] != round.CueCountdownStart {
		t.Errorf("unexpected kinds %v", kinds)
	}
	if r.Count(round.CueTick) != 2 {
		t.Errorf("expected 2 ticks, got %d", r.Count(round.CueTick))
	}

	kinds[0] = round.CueTick
	if r.Kinds()[0] != round.CueCountdownStart {
		t.Error("Kinds must return a copy")
	}

	r.Reset()
	if len(r.Kinds()) != 0 {
		t.Error("expected empty recording after Reset")
	}
}

func TestDefaultArgs(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		t.Run(goos, func(t *testing.T) {
			args, err := defaultArgs(goos)
			if err != nil {
				t.Fatalf("defaultArgs(%s) failed: %v", goos, err)
			}
			if len(args) == 0 {
				t.Error("expected a command")
			}
		})
	}

	if _, err := defaultArgs("plan9"); !errors.Is(err, ErrNoCommand) {
		t.Errorf("expected ErrNoCommand, got %v", err)
	}
}

func TestCommand_Signal(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	marker := filepath.Join(t.TempDir(), "played")
	c, err := NewCommand([]string{"sh", "-c", "echo played >> " + marker}, time.Second, nil)
	if err != nil {
		t.Fatalf("NewCommand() failed: %v", err)
	}

	c.Signal(round.CueTick)
	c.Wait()

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("command did not run: %v", err)
	}
	if strings.TrimSpace(string(data)) != "played" {
		t.Errorf("unexpected marker content %q", data)
	}
}

func TestCommand_DoesNotBlock(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	c, err := NewCommand([]string{"sleep", "1"}, 2*time.Second, nil)
	if err != nil {
		t.Fatalf("NewCommand() failed: %v", err)
	}
	defer c.Wait()

	start := time.Now()
	c.Signal(round.CueCountdownStart)
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Signal blocked for %v", elapsed)
	}
}

func TestCommand_DropsWhileBusy(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	marker := filepath.Join(t.TempDir(), "played")
	c, err := NewCommand([]string{"sh", "-c", "echo x >> " + marker + "; sleep 0.3"}, time.Second, nil)
	if err != nil {
		t.Fatalf("NewCommand() failed: %v", err)
	}

	c.Signal(round.CueTick)
	c.Signal(round.CueTick)
	c.Wait()

	data, err := os.ReadFile(marker)
	if err != nil {
		t.Fatalf("command did not run: %v", err)
	}
	if n := strings.Count(string(data), "x"); n != 1 {
		t.Errorf("expected one run, got %d", n)
	}
}

func TestCommand_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	log, hook := test.NewNullLogger()
	c, err := NewCommand([]string{"sleep", "5"}, 100*time.Millisecond, log)
	if err != nil {
		t.Fatalf("NewCommand() failed: %v", err)
	}

	start := time.Now()
	c.Signal(round.CueTick)
	c.Wait()

	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout not enforced, took %v", elapsed)
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning, got %v", entry)
	}
	if err, _ := entry.Data[logrus.ErrorKey].(error); err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("expected timeout error, got %v", entry.Data[logrus.ErrorKey])
	}
}

func TestCommand_MissingBinary(t *testing.T) {
	log, hook := test.NewNullLogger()
	c, err := NewCommand([]string{"rpsmood-no-such-player"}, time.Second, log)
	if err != nil {
		t.Fatalf("NewCommand() failed: %v", err)
	}

	c.Signal(round.CueTick)
	c.Wait()

	if len(hook.Entries) != 1 {
		t.Errorf("expected one warning, got %d", len(hook.Entries))
	}
}
