// Package explore is the tile-exploration session: one actor stepping across
// a rasterized canyon world under a follow camera.
package explore

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vovakirdan/canyonwalk/internal/camera"
	"github.com/vovakirdan/canyonwalk/internal/collision"
	"github.com/vovakirdan/canyonwalk/internal/config"
	"github.com/vovakirdan/canyonwalk/internal/core"
	"github.com/vovakirdan/canyonwalk/internal/maps"
	"github.com/vovakirdan/canyonwalk/internal/metrics"
	"github.com/vovakirdan/canyonwalk/internal/movement"
	"github.com/vovakirdan/canyonwalk/internal/telemetry"
	"github.com/vovakirdan/canyonwalk/internal/terrain"
)

// Session implements registry.Game for one map.
type Session struct {
	m       maps.Map
	cfg     config.ExploreConfig
	metrics *metrics.Metrics
	tracer  trace.Tracer

	world  *terrain.World
	gate   *collision.Gate
	ctrl   *movement.Controller
	cam    *camera.Camera
	shader *Shader
	err    error

	explored map[core.Coord]bool
	walkable int

	screenW, screenH int
	started          time.Time
	last             time.Time
	finished         time.Time
	reached          bool
	paused           bool
	overlay          bool
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the exploration tunables.
func WithConfig(cfg config.ExploreConfig) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithMetrics records step and build metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithTracer sets the tracer used around world builds.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// New creates a session for m. Call Reset before stepping.
func New(m maps.Map, opts ...Option) *Session {
	s := &Session{
		m:      m,
		cfg:    config.DefaultExploreConfig(),
		tracer: telemetry.Tracer("explore"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ID returns the map identifier.
func (s *Session) ID() string { return s.m.ID }

// Title returns the map display name.
func (s *Session) Title() string { return s.m.Name }

// Map returns the map definition.
func (s *Session) Map() maps.Map { return s.m }

// World returns the terrain world, or nil if the build failed.
func (s *Session) World() *terrain.World { return s.world }

// Err returns the world build error, if any.
func (s *Session) Err() error { return s.err }

// Reset builds the world and places the actor on the spawn tile.
func (s *Session) Reset(cfg core.RuntimeConfig) {
	s.screenW, s.screenH = cfg.ScreenW, cfg.ScreenH
	s.shader = NewShader(cfg.Seed)
	s.explored = make(map[core.Coord]bool)
	s.started, s.last, s.finished = time.Time{}, time.Time{}, time.Time{}
	s.reached, s.paused, s.overlay = false, false, false

	s.err = s.build(context.Background())
	if s.err != nil {
		s.ctrl, s.cam = nil, nil
		return
	}

	mc := movement.Config{
		CellSize:     s.m.CellSize,
		Cols:         s.m.Width,
		Rows:         s.m.Height,
		StepDuration: s.cfg.Movement.StepDuration(),
		Cooldown:     s.cfg.Movement.Cooldown(),
		WallPenalty:  s.cfg.Movement.WallPenalty,
		ActorSize:    s.cfg.Movement.ActorSize * s.m.CellSize,
	}
	s.ctrl = movement.New(mc, s.collider(), s.m.SpawnTile())
	s.explored[s.ctrl.Tile()] = true

	worldW, worldH := s.m.PixelSize()
	viewW, viewH := s.viewport()
	s.cam = camera.New(viewW, viewH, worldW, worldH)
	s.cam.Follow(s.ctrl)
	s.cam.Update()
}

// build rasterizes the world inside a span and records build metrics.
func (s *Session) build(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "world.build")
	defer span.End()

	start := time.Now()
	w, err := s.m.BuildWorld(s.cfg.Terrain.Options())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("explore: building %s: %w", s.m.ID, err)
	}
	s.world = w
	s.gate = s.m.Gate()

	blocked := w.BlockedCount()
	s.walkable = 0
	for y := range s.m.Height {
		for x := range s.m.Width {
			if !s.m.Blocked(w, s.gate, core.C(x, y)) {
				s.walkable++
			}
		}
	}
	s.metrics.WorldBuilt(s.m.ID, time.Since(start), blocked)

	span.SetAttributes(
		attribute.String("map.id", s.m.ID),
		attribute.Int("map.width", s.m.Width),
		attribute.Int("map.height", s.m.Height),
		attribute.Int("mask.blocked", blocked),
		attribute.Int("gate.polygons", s.gate.Len()),
	)
	return nil
}

// collider picks the collision system for the map mode. Vector maps still
// keep the mask for the world border and footprints.
func (s *Session) collider() movement.Collider {
	if s.m.Mode == maps.ModeVector {
		return movement.Combined(movement.TileCollider(s.world), movement.PolygonCollider(s.gate))
	}
	return movement.TileCollider(s.world)
}

// viewport returns the map area of the screen in world pixels.
func (s *Session) viewport() (float64, float64) {
	cols := max(s.screenW, 0)
	rows := max(s.screenH-s.cfg.Camera.HUDRows, 0)
	return float64(cols) * s.pxPerCol(), float64(rows) * s.pxPerRow()
}

func (s *Session) pxPerCol() float64 {
	return s.m.CellSize / float64(s.cfg.Camera.TileColumns)
}

func (s *Session) pxPerRow() float64 {
	return s.m.CellSize / float64(s.cfg.Camera.TileRows)
}

// Resize adapts the viewport without restarting the run.
func (s *Session) Resize(screenW, screenH int) {
	s.screenW, s.screenH = screenW, screenH
	if s.cam == nil {
		return
	}
	s.cam.Resize(s.viewport())
	s.cam.Update()
}

// Step advances the session to in.At.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if s.started.IsZero() {
		s.started = in.At
	}

	if in.Has(core.ActionOverlay) {
		s.overlay = !s.overlay
	}
	if in.Has(core.ActionPause) && !s.reached {
		s.paused = !s.paused
	}
	if s.ctrl == nil || s.paused || s.reached {
		return core.StepResult{State: s.State()}
	}
	s.last = in.At

	ev := s.ctrl.Update(in.At, in)
	for range ev.Steps {
		s.metrics.Step(s.m.ID, true)
	}
	for range ev.Bumps {
		s.metrics.Step(s.m.ID, false)
	}
	for _, c := range ev.Reached {
		s.explored[c] = true
	}
	if !s.ctrl.IsMoving() && s.m.Goal != nil && s.ctrl.Tile() == *s.m.Goal {
		s.reached = true
		s.finished = in.At
		s.metrics.RunCompleted(s.m.ID)
	}

	s.cam.Update()
	return core.StepResult{State: s.State(), Moved: ev.Arrived}
}

// State returns the current session state.
func (s *Session) State() core.GameState {
	st := core.GameState{
		Score:    len(s.explored),
		GameOver: s.reached,
		Paused:   s.paused,
	}
	if s.ctrl != nil {
		stats := s.ctrl.Stats()
		st.Steps, st.Bumps = stats.Accepted, stats.Rejected
	}
	return st
}

// Summary reports the run so far.
func (s *Session) Summary() core.RunSummary {
	st := s.State()
	end := s.last
	if s.reached {
		end = s.finished
	}
	var d time.Duration
	if !s.started.IsZero() && end.After(s.started) {
		d = end.Sub(s.started)
	}
	return core.RunSummary{
		Steps:     st.Steps,
		Bumps:     st.Bumps,
		Explored:  st.Score,
		Duration:  d,
		Completed: s.reached,
	}
}

// ActorPosition returns the actor's continuous world-pixel position.
func (s *Session) ActorPosition() core.Vec {
	if s.ctrl == nil {
		return core.Vec{}
	}
	return s.ctrl.Position()
}

// ActorTile returns the tile the actor rests on or is stepping into.
func (s *Session) ActorTile() core.Coord {
	if s.ctrl == nil {
		return s.m.SpawnTile()
	}
	return s.ctrl.Tile()
}

// CameraOffset returns the camera's top-left corner in world pixels.
func (s *Session) CameraOffset() core.Vec {
	if s.cam == nil {
		return core.Vec{}
	}
	return s.cam.Offset()
}

// Walkable returns the number of tiles the actor could stand on.
func (s *Session) Walkable() int { return s.walkable }

// Explored reports whether the actor has stood on c.
func (s *Session) Explored(c core.Coord) bool { return s.explored[c] }
