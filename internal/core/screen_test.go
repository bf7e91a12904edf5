package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(30, 12)
	if s.Width() != 30 || s.Height() != 12 {
		t.Fatalf("dimensions = %dx%d, expected 30x12", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 4)
	s.SetColored(3, 1, '▓', ColorBrown)

	c := s.GetCell(3, 1)
	if c.Rune != '▓' || c.Color != ColorBrown {
		t.Errorf("GetCell(3, 1) = %+v, expected brown '▓'", c)
	}

	// Plain Set resets the color
	s.Set(3, 1, 'x')
	if c := s.GetCell(3, 1); c.Color != ColorDefault {
		t.Errorf("Set should use default color, got %v", c.Color)
	}

	// Out of bounds writes are ignored and reads are blank
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(0, 40, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 40) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenDrawTextColoredClips(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 0, "Depth", ColorYellow)

	if s.Row(0) != "     Dep" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if s.GetCell(6, 0).Color != ColorYellow {
		t.Error("text cells should carry the requested color")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(6, 1)
	s.DrawText(0, 0, "♥♥ ok")

	if s.Get(1, 0) != '♥' || s.Get(3, 0) != 'o' {
		t.Errorf("multibyte runes should occupy one cell each, row = %q", s.Row(0))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(8, 5)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := []struct {
		x, y int
		want rune
	}{
		{1, 1, '┌'},
		{5, 1, '┐'},
		{1, 4, '└'},
		{5, 4, '┘'},
	}
	for _, c := range corners {
		if got := s.Get(c.x, c.y); got != c.want {
			t.Errorf("corner (%d, %d) = %q, expected %q", c.x, c.y, got, c.want)
		}
	}
	if s.Get(3, 1) != '─' || s.Get(1, 2) != '│' {
		t.Error("box edges not drawn")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ROCK")
	s.DrawText(0, 1, "DIRT")

	if got := s.String(); got != "ROCK\nDIRT" {
		t.Errorf("String() = %q", got)
	}

	s.Resize(2, 1)
	if s.String() != "RO" {
		t.Errorf("shrinking should keep the top-left content, got %q", s.String())
	}

	s.Resize(6, 3)
	if !strings.HasPrefix(s.Row(0), "RO") || s.Row(2) != "      " {
		t.Errorf("growing should keep content and blank new cells, got %q", s.String())
	}
}
