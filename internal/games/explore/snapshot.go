package explore

import "github.com/vovakirdan/canyonwalk/internal/core"

// Phase is the session's coarse state.
type Phase string

const (
	PhaseExploring Phase = "exploring"
	PhaseStepping  Phase = "stepping"
	PhasePaused    Phase = "paused"
	PhaseReached   Phase = "reached"
	PhaseBroken    Phase = "broken"
)

// Snapshot captures session state for determinism tests and debugging.
type Snapshot struct {
	Map      string
	Tile     core.Coord
	Position core.Vec
	Camera   core.Vec
	Explored int
	Steps    int
	Bumps    int
	Phase    Phase
}

// Snapshot returns the current session snapshot.
func (s *Session) Snapshot() Snapshot {
	st := s.State()
	snap := Snapshot{
		Map:      s.m.ID,
		Tile:     s.ActorTile(),
		Position: s.ActorPosition(),
		Camera:   s.CameraOffset(),
		Explored: st.Score,
		Steps:    st.Steps,
		Bumps:    st.Bumps,
		Phase:    PhaseExploring,
	}
	switch {
	case s.err != nil:
		snap.Phase = PhaseBroken
	case s.reached:
		snap.Phase = PhaseReached
	case s.paused:
		snap.Phase = PhasePaused
	case s.ctrl != nil && s.ctrl.IsMoving():
		snap.Phase = PhaseStepping
	}
	return snap
}
