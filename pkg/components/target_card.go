package components

import "github.com/decker502/stealhome/pkg/ecs"

// TargetCardComponent 目标卡片
// 卡片被精灵命中后永久隐藏，可见性只能从 true 变为 false
type TargetCardComponent struct {
	ID          ecs.EntityID
	Title       string
	ImageRef    string
	Description string

	isVisible bool
}

// NewTargetCard 创建一张可见的目标卡片
func NewTargetCard(id ecs.EntityID, title, imageRef, description string) *TargetCardComponent {
	return &TargetCardComponent{
		ID:          id,
		Title:       title,
		ImageRef:    imageRef,
		Description: description,
		isVisible:   true,
	}
}

// IsVisible 卡片是否仍然可见
func (c *TargetCardComponent) IsVisible() bool {
	return c.isVisible
}

// Hide 隐藏卡片
// 返回 true 表示本次调用改变了可见性；已隐藏的卡片返回 false
func (c *TargetCardComponent) Hide() bool {
	if !c.isVisible {
		return false
	}
	c.isVisible = false
	return true
}
