package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("dimensions = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Errorf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '@', ColorBrightYellow)
	got := s.GetCell(5, 5)
	if got.Rune != '@' || got.Color != ColorBrightYellow {
		t.Errorf("GetCell(5, 5) = %+v", got)
	}
	if s.Get(5, 5) != '@' {
		t.Errorf("Get(5, 5) = %q, expected '@'", s.Get(5, 5))
	}

	// Out of bounds is silent and reads back as blank.
	s.SetColored(-1, 0, 'A', ColorOrange)
	s.SetColored(0, 100, 'A', ColorOrange)
	if s.GetCell(-1, 0) != blankCell {
		t.Error("out of bounds GetCell should return a blank cell")
	}

	s.Set(5, 5, '#')
	if s.GetCell(5, 5).Color != ColorDefault {
		t.Error("Set should reset the color")
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(20, 2)
	s.DrawTextColored(17, 0, "Hello", ColorCyan)

	if s.Row(0)[17:] != "Hel" {
		t.Errorf("row 0 = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(18, 0).Color != ColorCyan {
		t.Error("DrawTextColored lost its color")
	}

	s.DrawTextCentered(1, "Hi")
	if !strings.Contains(s.Row(1), "Hi") || s.Get(9, 1) != 'H' {
		t.Errorf("DrawTextCentered row = %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorGray)

	expected := "┌────┐\n│    │\n│    │\n└────┘"
	if s.String() != expected {
		t.Errorf("String() =\n%s\nexpected\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corners should carry the box color")
	}
}

func TestScreenResizePreservesTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")
	s.FillCell(Cell{Rune: '.', Color: ColorDim})
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("row 0 = %q after shrink", s.Row(0))
	}

	s.Resize(12, 6)
	if s.Get(10, 0) != ' ' || s.Get(7, 0) != '.' {
		t.Errorf("row 0 = %q after grow", s.Row(0))
	}
	if s.Row(-1) != strings.Repeat(" ", 12) {
		t.Error("out of bounds row should be spaces")
	}
}
