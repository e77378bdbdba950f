package main

import (
	"testing"

	"github.com/Faultbox/hexfield/internal/config"
	"github.com/Faultbox/hexfield/internal/game"
	"github.com/Faultbox/hexfield/pkg/hex"
)

func TestParseInts(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		n       int
		want    []int
		wantErr bool
	}{
		{"ok", []string{"1", "-2", "3"}, 3, []int{1, -2, 3}, false},
		{"too few", []string{"1"}, 2, nil, true},
		{"not a number", []string{"1", "x"}, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInts(tt.args, tt.n, "test")
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseInts() error = %v, wantErr %v", err, tt.wantErr)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("parseInts()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestToCell(t *testing.T) {
	c := toCell(hex.New(2, -3))
	if c.Q != 2 || c.R != -3 || c.S != 1 {
		t.Errorf("toCell = %+v, want q=2 r=-3 s=1", c)
	}
}

func TestLayoutFlags(t *testing.T) {
	l, rest, err := layoutFlags("pixel", []string{"-size", "2", "-flat", "1", "0"})
	if err != nil {
		t.Fatalf("layoutFlags() error = %v", err)
	}
	if l.Orientation != hex.FlatTop || l.Size != 2 {
		t.Errorf("layout = %+v, want flat size 2", l)
	}
	if len(rest) != 2 || rest[0] != "1" {
		t.Errorf("rest = %v", rest)
	}
}

func TestParseCells(t *testing.T) {
	cells, err := parseCells("0,1; -2,3")
	if err != nil {
		t.Fatalf("parseCells() error = %v", err)
	}
	if len(cells) != 2 || !cells[1].EqualInt(hex.New(-2, 3)) {
		t.Errorf("parseCells() = %v", cells)
	}

	if _, err := parseCells("1"); err == nil {
		t.Error("expected error for missing comma")
	}
	if cells, err := parseCells(""); err != nil || cells != nil {
		t.Errorf("parseCells(\"\") = %v, %v", cells, err)
	}
}

func TestPickScreen(t *testing.T) {
	newScene := func(radius int) *game.Scene {
		cfg := config.Default()
		cfg.Field.Radius = radius
		s, err := game.NewScene(cfg)
		if err != nil {
			t.Fatalf("NewScene: %v", err)
		}
		return s
	}

	results, err := pickScreen(newScene(3), 400, 300, 800, 600)
	if err != nil {
		t.Fatalf("pickScreen: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want one per mode", len(results))
	}
	for _, r := range results {
		if r.Slot == nil || *r.Slot != 0 || r.Cell == nil || *r.Cell != (cell{}) {
			t.Errorf("%s: viewport center should hit the center tile, got %+v", r.Mode, r)
		}
	}

	results, err = pickScreen(newScene(0), 0, 0, 800, 600)
	if err != nil {
		t.Fatalf("pickScreen: %v", err)
	}
	for _, r := range results {
		if r.Slot != nil {
			t.Errorf("%s: corner pixel should miss a one tile field, got slot %d", r.Mode, *r.Slot)
		}
	}

	if _, err := pickScreen(newScene(1), 1, 1, 0, 600); err == nil {
		t.Error("expected error for empty viewport")
	}
}
