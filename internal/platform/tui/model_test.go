package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canyonwalk/internal/config"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/storage"
)

// stubGame records the frames it is stepped with.
type stubGame struct {
	frames  []core.InputFrame
	resets  int
	resized [2]int
	state   core.GameState
	summary core.RunSummary
}

func (g *stubGame) ID() string               { return "stub" }
func (g *stubGame) Title() string            { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(*core.Screen)      {}
func (g *stubGame) State() core.GameState    { return g.state }
func (g *stubGame) Summary() core.RunSummary { return g.summary }
func (g *stubGame) Resize(w, h int)          { g.resized = [2]int{w, h} }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in)
	return core.StepResult{State: g.state}
}

func newTestModel(t *testing.T, g *stubGame, store *storage.Store) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1}
	m := NewModel(g, store, cfg, config.DefaultExploreConfig().Input)
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModelTapBecomesPressOnNextTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if len(g.frames) != 0 {
		t.Fatal("keys must not step the session directly")
	}

	now := time.Now()
	m = update(t, m, TickMsg(now))
	if len(g.frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(g.frames))
	}
	f := g.frames[0]
	if !f.IsPressed(core.DirRight) {
		t.Error("right should be pressed on the first tick")
	}
	if f.IsHeld(core.DirRight) {
		t.Error("a single tap is not held")
	}
	if !f.At.Equal(now) {
		t.Errorf("frame time = %v, expected tick time", f.At)
	}

	m = update(t, m, TickMsg(now.Add(16*time.Millisecond)))
	if g.frames[1].IsPressed(core.DirRight) {
		t.Error("a press is delivered once")
	}
}

func TestModelActionsReachTheSession(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, runeKey('m'))
	m = update(t, m, runeKey('p'))
	update(t, m, TickMsg(time.Now()))

	f := g.frames[0]
	if !f.Has(core.ActionOverlay) || !f.Has(core.ActionPause) {
		t.Error("overlay and pause should both be set on the frame")
	}
}

func TestModelRestartResetsInsteadOfStepping(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg(time.Now()))

	if g.resets != 2 {
		t.Errorf("resets = %d, expected Init plus restart", g.resets)
	}
	if len(g.frames) != 0 {
		t.Error("restart tick should not step")
	}
}

func TestModelResizeUsesResizer(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if g.resized != [2]int{100, 30} {
		t.Errorf("resized = %v", g.resized)
	}
	if g.resets != 1 {
		t.Error("a Resizer should not be reset on resize")
	}
}

func TestModelBackOnlyWhenPausedOrFinished(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(t, g, nil)
	m.hosted = true

	m = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("back is ignored while exploring")
	}

	g.state.Paused = true
	m = update(t, m, TickMsg(time.Now()))
	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back should return to the menu when paused")
	}
	if m.IsQuitting() {
		t.Error("hosted sessions do not quit on back")
	}
}

func TestModelSavesRunOnceWhenGoalReached(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{
		state:   core.GameState{GameOver: true, Steps: 4},
		summary: core.RunSummary{Steps: 4, Explored: 5, Duration: time.Second, Completed: true},
	}
	m := newTestModel(t, g, store)

	now := time.Now()
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(time.Second)))
	update(t, m, runeKey('q'))

	runs, err := store.AllRuns("stub")
	if err != nil {
		t.Fatalf("AllRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 stored run, got %d", len(runs))
	}
	if !runs[0].Completed || runs[0].Steps != 4 {
		t.Errorf("stored run = %+v", runs[0])
	}
}

func TestModelSkipsEmptyRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	g := &stubGame{}
	m := newTestModel(t, g, store)
	m = update(t, m, runeKey('q'))

	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	runs, err := store.AllRuns("stub")
	if err != nil {
		t.Fatalf("AllRuns failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("a run without steps should not be stored, got %d", len(runs))
	}
}
