package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canyonwalk/internal/config"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/registry"
	"github.com/vovakirdan/canyonwalk/internal/storage"
)

// Model is the Bubble Tea model for playing one session.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	store     *storage.Store
	config    core.RuntimeConfig
	keys      *KeyMapper
	tracker   *KeyTracker
	pending   core.InputFrame // Presses and actions since the last tick
	gameState core.GameState

	hosted     bool // Running inside a menu session; Back returns to it
	quitting   bool
	backToMenu bool
	runSaved   bool // Whether the current run has been stored
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, input config.InputConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		config:  cfg,
		keys:    NewKeyMapper(),
		tracker: NewKeyTracker(input.ReleaseInitial(), input.ReleaseRepeat()),
		pending: core.NewInputFrame(time.Time{}),
	}
}

// Init resets the session and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Directions go through the key
// tracker so auto-repeats become held state rather than new presses.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if d := m.keys.MapDirection(msg); d != core.DirNone {
		if m.tracker.Press(d, now) {
			m.pending.Press(d)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.saveRun()
		m.quitting = true
		return m, tea.Quit

	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.saveRun()
			m.backToMenu = true
			if !m.hosted {
				m.quitting = true
				return m, tea.Quit
			}
		}

	case action != core.ActionNone:
		m.pending.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick samples input at now and advances the session.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	frame := m.pending.Clone()
	frame.At = now
	m.tracker.Apply(now, &frame)
	m.pending.Clear()

	if frame.Has(core.ActionRestart) {
		m.saveRun()
		m.config.Seed = now.UnixNano()
		m.game.Reset(m.config)
		m.tracker.Reset()
		m.gameState = m.game.State()
		m.runSaved = false
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	// Store the run once it reaches the goal
	if m.gameState.GameOver {
		m.saveRun()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun stores the current run once. Runs without a single step are
// not worth keeping.
func (m *Model) saveRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true

	s, ok := m.game.(registry.Summarizer)
	if !ok || m.store == nil {
		return
	}
	sum := s.Summary()
	if sum.Steps == 0 {
		return
	}
	//nolint:errcheck // Best-effort save, the session continues regardless
	m.store.SaveRun(m.game.ID(), sum)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".canyonwalk", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting && !m.hosted {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the session state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single session.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, input config.InputConfig) error {
	model := NewModel(game, store, cfg, input)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
