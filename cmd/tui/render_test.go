package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/stealhome/pkg/utils"
)

func TestCellPointRoundTrip(t *testing.T) {
	tests := []struct {
		col, row int
		want     utils.Point
	}{
		{0, 0, utils.Point{X: 4, Y: 8}},
		{10, 3, utils.Point{X: 84, Y: 56}},
		{127, 47, utils.Point{X: 1020, Y: 760}},
	}

	for _, tt := range tests {
		p := cellToPoint(tt.col, tt.row)
		if p != tt.want {
			t.Errorf("cellToPoint(%d,%d) = %+v, want %+v", tt.col, tt.row, p, tt.want)
		}
		col, row := pointToCell(p)
		if col != tt.col || row != tt.row {
			t.Errorf("pointToCell(%+v) = (%d,%d), want (%d,%d)", p, col, row, tt.col, tt.row)
		}
	}
}

func TestRectToCells(t *testing.T) {
	left, top, right, bottom := rectToCells(utils.Rect{Left: 12, Top: 20, Width: 20, Height: 30})
	if left != 1 || top != 1 || right != 4 || bottom != 4 {
		t.Errorf("got (%d,%d,%d,%d), want (1,1,4,4)", left, top, right, bottom)
	}
}

func TestDrawTextWideRunes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 2)

	end := drawText(screen, 1, 0, "卡片 1", tcell.StyleDefault)
	// 两个中文字符各占两格，空格和数字各占一格
	if end != 7 {
		t.Errorf("end column: got %d, want 7", end)
	}

	r, _, _, _ := screen.GetContent(3, 0)
	if r != '片' {
		t.Errorf("rune at column 3: got %q, want '片'", r)
	}
}
