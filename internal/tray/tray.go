// Package tray provides a system tray control surface for the game.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"github.com/ayusman/rpsmood/internal/app"
	"github.com/ayusman/rpsmood/internal/emotion"
	"github.com/ayusman/rpsmood/internal/game"
	"github.com/ayusman/rpsmood/internal/round"
)

// Tray represents the system tray application.
type Tray struct {
	onRestart func()
	onOverlay func()
	onQuit    func()
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuScore   *systray.MenuItem
	menuEmotion *systray.MenuItem
	menuOverlay *systray.MenuItem

	last struct {
		score   string
		emotion string
		overlay string
	}
}

// New creates a new Tray instance.
func New() *Tray {
	return &Tray{}
}

// OnRestart sets the callback for the restart menu item.
func (t *Tray) OnRestart(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRestart = fn
}

// OnToggleOverlay sets the callback for the landmark overlay menu item.
func (t *Tray) OnToggleOverlay(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onOverlay = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Bind wires the menu to a running game and keeps the labels current.
func (t *Tray) Bind(a *app.App) (unsubscribe func()) {
	t.OnRestart(func() { a.Send(app.CmdRestartRound) })
	t.OnToggleOverlay(func() { a.Send(app.CmdToggleLandmarkOverlay) })
	t.OnQuit(func() { a.Send(app.CmdQuit) })
	return a.Subscribe(t.Update)
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("RPS Mood")
	systray.SetTooltip("Rock Paper Scissors with emotion reactions")

	t.mu.Lock()
	t.menuScore = systray.AddMenuItem(ScoreTitle(game.ScoreBoard{}, round.Idle), "Current score")
	t.menuScore.Disable()
	t.menuEmotion = systray.AddMenuItem(EmotionTitle(emotion.NoFace), "Detected emotion")
	t.menuEmotion.Disable()
	systray.AddSeparator()

	menuRestart := systray.AddMenuItem("Restart round", "Discard the current round")
	t.menuOverlay = systray.AddMenuItem(OverlayTitle(false), "Toggle the landmark overlay")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit RPS Mood")
	t.mu.Unlock()

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-menuRestart.ClickedCh:
				t.handle(func(t *Tray) func() { return t.onRestart })
			case <-t.menuOverlay.ClickedCh:
				t.handle(func(t *Tray) func() { return t.onOverlay })
			case <-menuQuit.ClickedCh:
				t.handle(func(t *Tray) func() { return t.onQuit })
				systray.Quit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

// handle invokes the selected callback outside the lock.
func (t *Tray) handle(pick func(t *Tray) func()) {
	t.mu.RLock()
	callback := pick(t)
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// Update refreshes the menu labels from a frame. It runs on the game loop, so
// labels are only touched when their text changes.
func (t *Tray) Update(fr app.FrameResult) {
	score := ScoreTitle(fr.Score, fr.State)
	mood := EmotionTitle(fr.Emotion)
	overlay := OverlayTitle(fr.Overlay)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.menuScore == nil {
		return
	}
	if score != t.last.score {
		t.menuScore.SetTitle(score)
		t.last.score = score
	}
	if mood != t.last.emotion {
		t.menuEmotion.SetTitle(mood)
		t.last.emotion = mood
	}
	if overlay != t.last.overlay {
		t.menuOverlay.SetTitle(overlay)
		t.last.overlay = overlay
	}
}

// ScoreTitle formats the score line.
func ScoreTitle(score game.ScoreBoard, state round.State) string {
	return fmt.Sprintf("You %d : %d Computer (%s)", score.Player, score.Computer, stateLabel(state))
}

// EmotionTitle formats the emotion line.
func EmotionTitle(r emotion.Reading) string {
	return fmt.Sprintf("Mood: %s %.0f%%", r.Emotion, r.Confidence*100)
}

// OverlayTitle formats the overlay toggle.
func OverlayTitle(on bool) string {
	if on {
		return "● Landmarks: on"
	}
	return "○ Landmarks: off"
}

func stateLabel(s round.State) string {
	switch s {
	case round.Idle:
		return "waiting for a face"
	case round.CountingDown:
		return "get ready"
	case round.Capturing:
		return "show your hand"
	case round.Resolved:
		return "round over"
	}
	return s.String()
}
