package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/rpsmood/internal/app"
	"github.com/ayusman/rpsmood/internal/capture"
	"github.com/ayusman/rpsmood/internal/config"
	"github.com/ayusman/rpsmood/internal/cue"
	"github.com/ayusman/rpsmood/internal/detector"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/logging"
	"github.com/ayusman/rpsmood/internal/round"
	"github.com/ayusman/rpsmood/internal/server"
	"github.com/ayusman/rpsmood/internal/store"
	"github.com/ayusman/rpsmood/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	camera := flag.Int("camera", 0, "camera device id")
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "round history database (empty disables history)")
	withTray := flag.Bool("tray", false, "show the system tray menu")
	static := flag.String("static", "", "directory of static web files")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpsmood: %v\n", err)
		os.Exit(1)
	}

	// Flags override the file and the environment, but only when given.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "camera":
			cfg.Camera.Device = *camera
		case "addr":
			cfg.Server.Addr = *addr
		case "db":
			cfg.History.Path = *dbPath
			cfg.History.Enabled = *dbPath != ""
		case "tray":
			cfg.Tray = *withTray
		case "static":
			cfg.Server.StaticDir = *static
		}
	})
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "rpsmood: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpsmood: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("RPS Mood - Rock Paper Scissors with emotion reactions")

	if err := run(cfg, logger); err != nil {
		logger.WithError(err).Error("rpsmood stopped with an error")
		logger.Close()
		os.Exit(1)
	}
	logger.Close()
}

func run(cfg config.Config, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		st        *store.Store
		history   app.History
		sessionID string
	)
	if cfg.History.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.History.Path), 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		var err error
		st, err = store.New(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer st.Close()

		h, err := app.NewStoreHistory(ctx, st, time.Now())
		if err != nil {
			return fmt.Errorf("start session: %w", err)
		}
		history, sessionID = h, h.SessionID()
		log.WithFields(logrus.Fields{"db": cfg.History.Path, "session": sessionID}).Info("recording round history")
	}

	c := newCue(cfg.Cue, log)
	machine := round.NewMachine(round.Config{
		Duration: cfg.Round.Countdown,
		Unit:     cfg.Round.Unit,
	}, game.NewResolver(nil), c)

	a := app.New(app.Config{
		Camera: capture.NewCamera(capture.Options{
			DeviceID: cfg.Camera.Device,
			Width:    cfg.Camera.Width,
			Height:   cfg.Camera.Height,
			FPS:      cfg.Camera.FPS,
			Mirror:   cfg.Camera.Mirror,
		}),
		Detector: newDetector(cfg.Detector, log),
		Machine:  machine,
		History:  history,
		Log:      log.WithField("component", "app"),
		Stream:   cfg.Server.Stream,
	})

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		log.WithField("dir", staticDir).Info("serving static files")
	}

	srv := server.New(server.Config{
		StaticDir:     staticDir,
		Game:          a,
		Store:         st,
		SessionID:     sessionID,
		BroadcastRate: cfg.Server.BroadcastRate,
		Log:           log.WithField("component", "server"),
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srvErr := make(chan error, 1)
	go func() {
		err := srv.Run(ctx, cfg.Server.Addr)
		cancel()
		srvErr <- err
	}()

	loopErr := make(chan error, 1)
	go func() {
		err := a.Run(ctx)
		cancel()
		if w, ok := c.(interface{ Wait() }); ok {
			w.Wait()
		}
		loopErr <- err
	}()

	if cfg.Tray {
		t := tray.New()
		unsubscribe := t.Bind(a)
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
		unsubscribe()
		cancel()
	}

	return errors.Join(<-loopErr, <-srvErr)
}

// newCue selects the countdown cue. A command that cannot be set up falls
// back to the terminal bell.
func newCue(cfg config.CueConfig, log logrus.FieldLogger) round.Cue {
	cueLog := log.WithField("component", "cue")
	switch cfg.Mode {
	case "none":
		return cue.Nop{}
	case "bell":
		return cue.NewBell(os.Stdout, cueLog)
	}

	args := cfg.Command
	if len(args) == 0 {
		def, err := cue.DefaultArgs()
		if err != nil {
			log.WithError(err).Warn("cue command unavailable, using terminal bell")
			return cue.NewBell(os.Stdout, cueLog)
		}
		args = def
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		log.WithError(err).Warn("cue command unavailable, using terminal bell")
		return cue.NewBell(os.Stdout, cueLog)
	}

	cmd, err := cue.NewCommand(args, cfg.Timeout, cueLog)
	if err != nil {
		log.WithError(err).Warn("cue command unavailable, using terminal bell")
		return cue.NewBell(os.Stdout, cueLog)
	}
	return cmd
}

// newDetector starts the MediaPipe sidecar detector. Without the sidecar the
// game still runs, but no hand or face is ever seen.
func newDetector(cfg config.DetectorConfig, log logrus.FieldLogger) detector.Detector {
	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:        cfg.MaxHands,
		MaxFaces:        cfg.MaxFaces,
		MinConfidence:   cfg.MinConfidence,
		RefineLandmarks: cfg.RefineLandmarks,
		ScriptPath:      cfg.ScriptPath,
		PythonPath:      cfg.PythonPath,
	})
	if err != nil {
		log.WithError(err).Warn("landmark detector unavailable, using an empty detector")
		return detector.NewMockDetector()
	}
	return det
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.rpsmood/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeWebDir := filepath.Join(config.DataDir(), "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
