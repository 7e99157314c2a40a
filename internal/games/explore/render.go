package explore

import (
	"fmt"
	"math"

	"github.com/vovakirdan/canyonwalk/internal/core"
)

// Render draws the HUD, the visible part of the world and the actor.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	s.renderHUD(dst)

	if s.err != nil {
		s.renderOverlay(dst, "Map failed to build", s.err.Error())
		return
	}
	if dst.Height() <= s.cfg.Camera.HUDRows || s.ctrl == nil {
		s.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	s.renderWorld(dst)
	s.renderActor(dst)

	switch {
	case s.reached:
		sum := s.Summary()
		s.renderOverlay(dst, "Goal reached!",
			fmt.Sprintf("%d steps, %d tiles in %.1fs. R to restart", sum.Steps, sum.Explored, sum.Duration.Seconds()))
	case s.paused:
		s.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (s *Session) renderHUD(dst *core.Screen) {
	if s.cfg.Camera.HUDRows <= 0 {
		return
	}
	st := s.State()
	hud := fmt.Sprintf(" %s │ explored %d/%d │ steps %d │ bumps %d │ %s",
		s.m.Name, st.Score, s.walkable, st.Steps, st.Bumps, s.ActorTile())
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)
	if s.overlay {
		tag := "[mask] "
		dst.DrawTextColored(dst.Width()-len(tag), 0, tag, core.ColorCyan)
	}
}

// renderWorld samples the tile under the center of every map-area cell.
func (s *Session) renderWorld(dst *core.Screen) {
	off := s.cam.Offset()
	hud := s.cfg.Camera.HUDRows
	colPx, rowPx := s.pxPerCol(), s.pxPerRow()

	for sy := hud; sy < dst.Height(); sy++ {
		py := off.Y + (float64(sy-hud)+0.5)*rowPx
		for sx := range dst.Width() {
			px := off.X + (float64(sx)+0.5)*colPx
			tile := core.TileOf(core.V(px, py), s.m.CellSize)
			if !tile.InBounds(s.m.Width, s.m.Height) {
				continue
			}
			c := s.tileCell(tile)
			dst.SetColored(sx, sy, c.Rune, c.Color)
		}
	}
}

func (s *Session) tileCell(tile core.Coord) core.Cell {
	if s.m.Goal != nil && tile == *s.m.Goal {
		return core.Cell{Rune: '◆', Color: core.ColorBrightYellow}
	}
	kind := s.world.KindAt(tile)
	if s.gate.IsBlocked(tile.PixelCenter(s.m.CellSize)) {
		return core.Cell{Rune: '%', Color: core.ColorGray}
	}
	if s.overlay {
		return core.Cell{Rune: kind.Glyph(), Color: core.ColorDefault}
	}
	return s.shader.Cell(kind, tile, s.explored[tile])
}

// renderActor draws the actor over the cells its tile-sized box covers.
func (s *Session) renderActor(dst *core.Screen) {
	view := s.cam.WorldToView(s.ctrl.Position())
	half := s.m.CellSize / 2
	left := int(math.Round((view.X - half) / s.pxPerCol()))
	top := int(math.Round((view.Y-half)/s.pxPerRow())) + s.cfg.Camera.HUDRows

	for dy := range s.cfg.Camera.TileRows {
		for dx := range s.cfg.Camera.TileColumns {
			dst.SetColored(left+dx, top+dy, '@', core.ColorBrightWhite)
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (s *Session) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
