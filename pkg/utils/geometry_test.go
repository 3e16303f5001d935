package utils

import "testing"

// TestRectContains 测试点在矩形内的判定（边界包含）
func TestRectContains(t *testing.T) {
	r := Rect{Left: 100, Top: 100, Width: 100, Height: 100}

	tests := []struct {
		name      string
		p         Point
		shouldHit bool
	}{
		{"点在矩形内", Point{150, 150}, true},
		{"点在左边界上", Point{100, 150}, true},
		{"点在右边界上", Point{200, 150}, true},
		{"点在上边界上", Point{150, 100}, true},
		{"点在下边界上", Point{150, 200}, true},
		{"点在矩形左侧", Point{50, 150}, false},
		{"点在矩形右侧", Point{250, 150}, false},
		{"点在矩形上方", Point{150, 50}, false},
		{"点在矩形下方", Point{150, 250}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.p); got != tt.shouldHit {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.shouldHit)
			}
		})
	}
}

// TestRectExpand 测试矩形扩展容差
func TestRectExpand(t *testing.T) {
	r := Rect{Left: 100, Top: 100, Width: 50, Height: 20}.Expand(5)

	if r.Left != 95 || r.Top != 95 || r.Width != 60 || r.Height != 30 {
		t.Errorf("Expand(5) = %+v", r)
	}
	if !r.Contains(Point{X: 155, Y: 125}) {
		t.Error("corner inside tolerance should be contained")
	}
	if r.Contains(Point{X: 155.1, Y: 110}) {
		t.Error("point beyond tolerance should not be contained")
	}
}

// TestClamp 测试数值限制
func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1) = %v, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11) = %v, want 10", got)
	}
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5) = %v, want 5", got)
	}
}
