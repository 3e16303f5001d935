package systems

import (
	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

// VisibleCardLister 列出可见卡片（按ID升序）
type VisibleCardLister interface {
	VisibleCards() []*components.TargetCardComponent
}

// GridCardGeometry 按响应式网格计算卡片矩形
//
// 卡片的位置由它在可见卡片中的序号决定（隐藏的卡片不占位），
// 两个渲染宿主和场景验证工具共用同一套布局。
type GridCardGeometry struct {
	cards VisibleCardLister
}

// NewGridCardGeometry 创建网格几何提供者
func NewGridCardGeometry(cards VisibleCardLister) *GridCardGeometry {
	return &GridCardGeometry{cards: cards}
}

// CardRect 返回可见卡片的矩形；隐藏或未知卡片返回 false
func (g *GridCardGeometry) CardRect(id ecs.EntityID, vp game.Viewport) (utils.Rect, bool) {
	for slot, card := range g.cards.VisibleCards() {
		if card.ID == id {
			return config.CardLayout(vp.Width, vp.Height, slot), true
		}
	}
	return utils.Rect{}, false
}

// Layout 返回所有可见卡片及其矩形（按ID升序）
func (g *GridCardGeometry) Layout(vp game.Viewport) []CardPlacement {
	visible := g.cards.VisibleCards()
	placements := make([]CardPlacement, len(visible))
	for slot, card := range visible {
		placements[slot] = CardPlacement{
			Card: card,
			Rect: config.CardLayout(vp.Width, vp.Height, slot),
		}
	}
	return placements
}

// CardPlacement 卡片及其渲染矩形
type CardPlacement struct {
	Card *components.TargetCardComponent
	Rect utils.Rect
}
