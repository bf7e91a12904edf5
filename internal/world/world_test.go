package world

import (
	"testing"

	"github.com/vovakirdan/drilldown/internal/config"
)

func testConfig() config.WorldConfig {
	return config.DefaultDrillConfig().World
}

func TestNewDimensions(t *testing.T) {
	w := New(testConfig(), 1)

	if w.Cols() != 15 {
		t.Errorf("Cols = %d, want 15", w.Cols())
	}
	if w.VisibleRows() != 20 {
		t.Errorf("VisibleRows = %d, want 20", w.VisibleRows())
	}
	if w.RowCount() != 25 {
		t.Errorf("RowCount = %d, want 25", w.RowCount())
	}
	for r := 0; r < 5; r++ {
		for c := 0; c < w.Cols(); c++ {
			if got := w.Cell(c, r); got != Empty {
				t.Fatalf("start area cell (%d,%d) = %v, want empty", c, r, got)
			}
		}
	}
}

func TestFallbackTiles(t *testing.T) {
	w := New(testConfig(), 1)

	tests := []struct {
		name string
		x, y float64
		want Tile
	}{
		{"left wall", -1, 100, Rock},
		{"right wall", 480, 100, Rock},
		{"sky", 100, -10, Empty},
		{"below generated", 100, 32 * 1000, Rock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.TileAt(tt.x, tt.y); got != tt.want {
				t.Errorf("TileAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestEveryRowHasPath(t *testing.T) {
	cfg := testConfig()
	// Make blocked rows common so the forced column actually gets exercised.
	for i := range cfg.Biomes {
		cfg.Biomes[i].RockChance = 0.97
		cfg.Biomes[i].OreChance = 0
		cfg.Biomes[i].HardChance = 0.5
	}
	cfg.TrailingRows = 5000

	w := New(cfg, 42)
	w.EnsureGenerated(32 * 2000)

	for r := 0; r < w.RowCount(); r++ {
		open := false
		for c := 0; c < w.Cols(); c++ {
			if !w.Cell(c, r).IsSolid() {
				open = true
				break
			}
		}
		if !open {
			t.Fatalf("row %d is fully blocked", r)
		}
	}
}

func TestDig(t *testing.T) {
	w := New(testConfig(), 1)

	// Start area is empty: dig is a no-op.
	if w.Dig(10, 10) {
		t.Error("Dig on empty cell returned true")
	}

	w.SetCell(3, 10, Rock)
	x, y := w.CellCenter(3, 10)
	if !w.Dig(x, y) {
		t.Error("Dig on rock returned false")
	}
	if got := w.Cell(3, 10); got != Empty {
		t.Errorf("Cell after dig = %v, want empty", got)
	}

	if w.Dig(-5, y) {
		t.Error("Dig outside columns returned true")
	}
	if w.Dig(x, 32*1000) {
		t.Error("Dig past generated rows returned true")
	}
}

func TestDegrade(t *testing.T) {
	w := New(testConfig(), 1)
	w.SetCell(2, 8, HardRock)
	x, y := w.CellCenter(2, 8)

	if !w.Degrade(x, y) {
		t.Fatal("Degrade on hard rock returned false")
	}
	if got := w.Cell(2, 8); got != Rock {
		t.Errorf("Cell after degrade = %v, want rock", got)
	}
	if w.Degrade(x, y) {
		t.Error("Degrade on rock should return false")
	}
}

func TestRowCountMonotonicAndDugStaysDug(t *testing.T) {
	w := New(testConfig(), 7)

	w.SetCell(4, 20, Dirt)
	w.DigCell(4, 20)

	prev := w.RowCount()
	for scroll := 0.0; scroll <= 32*40; scroll += 5 {
		n := w.EnsureGenerated(scroll)
		if n < prev {
			t.Fatalf("RowCount decreased: %d -> %d", prev, n)
		}
		prev = n
		if scroll < 32*20 && w.Cell(4, 20) != Empty {
			t.Fatalf("dug cell regenerated at scroll %v", scroll)
		}
	}
	if prev < 40+w.VisibleRows()+LookAhead {
		t.Errorf("RowCount = %d, want at least %d", prev, 40+w.VisibleRows()+LookAhead)
	}
}

func TestSlidingWindowEvicts(t *testing.T) {
	w := New(testConfig(), 3)
	w.EnsureGenerated(32 * 500)

	if w.Offset() != 500-4 {
		t.Errorf("Offset = %d, want %d", w.Offset(), 496)
	}
	if w.Retained() > w.VisibleRows()+LookAhead+4+1 {
		t.Errorf("Retained = %d, window not bounded", w.Retained())
	}
	if got := w.Cell(0, 10); got != Empty {
		t.Errorf("evicted cell = %v, want empty", got)
	}
	if w.DigCell(0, 10) {
		t.Error("DigCell on evicted row returned true")
	}
}

func TestDeterministicRows(t *testing.T) {
	w1 := New(testConfig(), 99)
	w2 := New(testConfig(), 99)

	// Different scroll paths, same final position.
	w1.EnsureGenerated(32 * 50)
	for s := 0.0; s <= 32*50; s += 32 {
		w2.EnsureGenerated(s)
	}

	for r := w1.Offset(); r < w1.RowCount(); r++ {
		for c := 0; c < w1.Cols(); c++ {
			if w1.Cell(c, r) != w2.Cell(c, r) {
				t.Fatalf("cell (%d,%d) differs: %v vs %v", c, r, w1.Cell(c, r), w2.Cell(c, r))
			}
		}
	}
}

func TestBiomeProgression(t *testing.T) {
	cfg := testConfig()
	cfg.TrailingRows = 1000
	w := New(cfg, 5)
	w.EnsureGenerated(32 * 700)

	count := func(from, to int) (solid, hard int) {
		for r := from; r < to; r++ {
			for c := 0; c < w.Cols(); c++ {
				switch w.Cell(c, r) {
				case Rock:
					solid++
				case HardRock:
					solid++
					hard++
				}
			}
		}
		return
	}

	shallowSolid, shallowHard := count(5, 100)
	deepSolid, deepHard := count(400, 495)

	if shallowHard != 0 {
		t.Errorf("hard rock above depth 100: %d", shallowHard)
	}
	if deepHard == 0 {
		t.Error("expected hard rock in the core biome")
	}
	if deepSolid <= shallowSolid {
		t.Errorf("deep rows should be rockier: %d vs %d", deepSolid, shallowSolid)
	}
}

func TestForEachInRadiusEuclidean(t *testing.T) {
	w := New(testConfig(), 1)
	cx, cy := w.CellCenter(7, 10)

	visited := map[[2]int]bool{}
	w.ForEachInRadius(cx, cy, 2*32, func(col, row int, _ Tile) {
		visited[[2]int{col, row}] = true
	})

	if !visited[[2]int{7, 12}] {
		t.Error("cell at distance 2 tiles should be visited")
	}
	if visited[[2]int{9, 12}] {
		t.Error("diagonal corner cell (Chebyshev 2, Euclidean 2.83) should not be visited")
	}
	if len(visited) != 13 {
		t.Errorf("visited %d cells, want 13", len(visited))
	}
}
