// Package utils 提供游戏开发中常用的工具函数
//
// geometry.go 定义核心使用的几何类型。
// 所有坐标都在"视口坐标系"中：原点为游戏表面左上角，X 向右，Y 向下，
// 与点击事件的坐标空间一致。
package utils

// Point 视口坐标系中的一个点
type Point struct {
	X float64
	Y float64
}

// Rect 轴对齐矩形（左上角 + 宽高）
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right 返回矩形右边界
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom 返回矩形下边界
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains 判断点是否在矩形内（边界包含在内）
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() &&
		p.Y >= r.Top && p.Y <= r.Bottom()
}

// Expand 返回四边各向外扩展 margin 的矩形
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Left:   r.Left - margin,
		Top:    r.Top - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Center 返回矩形中心点
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Clamp 将 v 限制在 [min, max] 范围内
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
