package components

import (
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/utils"
)

// FloatingKind 漂浮元素的种类
type FloatingKind int

const (
	FloatingCoin FloatingKind = iota // 金币
	FloatingOrb                      // 彩色小球
)

// String 返回种类名称（日志用）
func (k FloatingKind) String() string {
	switch k {
	case FloatingCoin:
		return "coin"
	case FloatingOrb:
		return "orb"
	default:
		return "unknown"
	}
}

// FloatingElementComponent 漂浮元素的状态
// 元素在视口内匀速漂移，碰到边界反弹，可以被点击清除
type FloatingElementComponent struct {
	ID   ecs.EntityID
	Kind FloatingKind

	// Size 边长（像素），元素占据 [X, X+Size] × [Y, Y+Size]
	Size float64
	// Opacity 透明度 0.0 ~ 1.0
	Opacity float64
	// BaseSpeed 基础速度，悬停时放大
	// 注意：位移使用固定步长，不受 BaseSpeed 影响
	BaseSpeed float64
	// Color 颜色标记（如 "red"），由渲染层映射为实际颜色
	Color string

	// X, Y 左上角位置
	X float64
	Y float64

	// Direction 运动方向（弧度）
	Direction float64
	// Rotation 当前旋转角度（度）
	Rotation float64
	// RotationSpeed 每帧旋转增量
	RotationSpeed float64

	// Hovered 指针是否悬停在元素上
	Hovered bool
}

// Bounds 返回元素占据的矩形
func (f *FloatingElementComponent) Bounds() utils.Rect {
	return utils.Rect{Left: f.X, Top: f.Y, Width: f.Size, Height: f.Size}
}
