package game

import (
	"log"

	"github.com/decker502/stealhome/pkg/config"
)

// Viewport 视口状态快照
type Viewport struct {
	Width         float64
	Height        float64
	ReducedMotion bool
}

// IsMobile 视口宽度是否属于移动端
func (v Viewport) IsMobile() bool {
	return config.IsMobileWidth(v.Width)
}

// ViewportListener 视口变化回调
// old 为变化前的快照，current 为变化后的快照
type ViewportListener func(old, current Viewport)

// ViewportTracker 跟踪窗口尺寸和"减少动态效果"偏好
//
// 值发生变化时同步通知所有订阅者（按订阅顺序）。
// 订阅者可能在任何实体创建之前就被调用。
type ViewportTracker struct {
	current   Viewport
	listeners map[int]ViewportListener
	order     []int
	nextToken int
}

// NewViewportTracker 创建视口跟踪器
// 非正数尺寸使用默认视口尺寸
func NewViewportTracker(width, height float64, reducedMotion bool) *ViewportTracker {
	vt := &ViewportTracker{
		listeners: make(map[int]ViewportListener),
	}
	vt.current = Viewport{
		Width:         sanitizeSize(width, config.DefaultViewportWidth),
		Height:        sanitizeSize(height, config.DefaultViewportHeight),
		ReducedMotion: reducedMotion,
	}
	return vt
}

// Viewport 返回当前视口
func (vt *ViewportTracker) Viewport() Viewport {
	return vt.current
}

// IsMobile 当前视口是否属于移动端
func (vt *ViewportTracker) IsMobile() bool {
	return vt.current.IsMobile()
}

// Resize 更新视口尺寸
// 非正数尺寸被忽略（窗口最小化时可能出现 0x0）
func (vt *ViewportTracker) Resize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == vt.current.Width && height == vt.current.Height {
		return
	}
	next := vt.current
	next.Width = width
	next.Height = height
	vt.apply(next)
}

// SetReducedMotion 更新"减少动态效果"偏好
func (vt *ViewportTracker) SetReducedMotion(reduced bool) {
	if reduced == vt.current.ReducedMotion {
		return
	}
	next := vt.current
	next.ReducedMotion = reduced
	log.Printf("[ViewportTracker] reduced motion: %v", reduced)
	vt.apply(next)
}

// Subscribe 订阅视口变化
// 返回取消订阅函数（可重复调用）
func (vt *ViewportTracker) Subscribe(listener ViewportListener) (unsubscribe func()) {
	token := vt.nextToken
	vt.nextToken++
	vt.listeners[token] = listener
	vt.order = append(vt.order, token)

	return func() {
		if _, ok := vt.listeners[token]; !ok {
			return
		}
		delete(vt.listeners, token)
		for i, t := range vt.order {
			if t == token {
				vt.order = append(vt.order[:i], vt.order[i+1:]...)
				break
			}
		}
	}
}

func (vt *ViewportTracker) apply(next Viewport) {
	old := vt.current
	vt.current = next

	// 复制一份，允许回调中取消订阅
	tokens := make([]int, len(vt.order))
	copy(tokens, vt.order)
	for _, token := range tokens {
		if listener, ok := vt.listeners[token]; ok {
			listener(old, next)
		}
	}
}

func sanitizeSize(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}
