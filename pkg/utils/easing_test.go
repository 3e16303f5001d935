package utils

import (
	"math"
	"testing"
)

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutQuad 测试二次方缓出函数
func TestEaseOutQuad(t *testing.T) {
	if got := EaseOutQuad(0.5); math.Abs(got-0.75) > 0.001 {
		t.Errorf("EaseOutQuad(0.5) = %v, 期望 0.75", got)
	}
	if got := EaseLinear(0.3); got != 0.3 {
		t.Errorf("EaseLinear(0.3) = %v, 期望 0.3", got)
	}
}

// TestLerpPoint 测试点插值
func TestLerpPoint(t *testing.T) {
	a := Point{X: 0, Y: 100}
	b := Point{X: 200, Y: 300}

	mid := LerpPoint(a, b, 0.5)
	if mid.X != 100 || mid.Y != 200 {
		t.Errorf("LerpPoint(0.5) = %+v, 期望 {100 200}", mid)
	}
	if end := LerpPoint(a, b, 1); end != b {
		t.Errorf("LerpPoint(1) = %+v, 期望 %+v", end, b)
	}
}
