package systems

import (
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

// GameCore 组装交互核心
//
// 持有视口跟踪器、游戏状态和三个系统，并把宿主的指针输入
// 路由到正确的系统。窗口宿主、终端宿主和场景验证工具共用它。
// 所有方法必须在同一个 goroutine 中调用。
type GameCore struct {
	Tracker   *game.ViewportTracker
	State     *game.GameState
	Geometry  *GridCardGeometry
	Floating  *FloatingElementSystem
	Flights   *SpriteFlightSystem
	Animation *SpriteAnimationSystem

	pointer    utils.Point
	hasPointer bool
	hovered    ecs.EntityID
}

// NewGameCore 创建交互核心并生成第一批漂浮元素
//
// 参数：
//   - cfg: 游戏配置
//   - vp: 初始视口（尺寸非正时使用默认视口）
//   - cues: 音效播放器，可为 nil
//   - rng: 随机数来源
func NewGameCore(cfg *config.GameConfig, vp game.Viewport, cues game.CuePlayer, rng utils.RandomSource) *GameCore {
	width, height := vp.Width, vp.Height
	if width <= 0 || height <= 0 {
		width, height = cfg.Viewport.DefaultWidth, cfg.Viewport.DefaultHeight
	}

	c := &GameCore{
		Tracker: game.NewViewportTracker(width, height, vp.ReducedMotion),
		State:   game.NewGameState(cfg.Cards, cues),
	}
	c.Geometry = NewGridCardGeometry(c.State)
	c.Floating = NewFloatingElementSystem(c.Tracker, c.State, cfg.Floating, rng)
	c.Flights = NewSpriteFlightSystem(c.Tracker, c.State, c.Geometry, cfg.Flight, rng)
	c.Animation = NewSpriteAnimationSystem(c.Flights)

	c.Floating.Initialize()
	return c
}

// Update 推进一帧
func (c *GameCore) Update(deltaTime float64) {
	c.Floating.Update(deltaTime)
	c.Animation.Update(deltaTime)

	// 元素移动到静止的指针下方时也要更新悬停状态
	if c.hasPointer {
		c.updateHover()
	}
}

// PointerDown 处理一次点击
//
// 点击先交给最上层的漂浮元素（清除并计分），
// 然后和原始页面一样冒泡到游戏表面，触发一次精灵飞行。
//
// 返回：
//   - cleared: 被清除的元素ID（0 表示没有）
//   - launched: 是否开始了新的飞行
func (c *GameCore) PointerDown(p utils.Point) (cleared ecs.EntityID, launched bool) {
	c.PointerMove(p)

	if id, ok := c.Floating.ElementAt(p); ok {
		if c.Floating.Click(id) {
			cleared = id
			if c.hovered == id {
				c.hovered = 0
			}
		}
	}
	launched = c.Flights.Click(p)
	return cleared, launched
}

// PointerMove 更新指针位置和悬停状态
func (c *GameCore) PointerMove(p utils.Point) {
	c.pointer = p
	c.hasPointer = true
	c.updateHover()
}

// PointerLeave 指针离开游戏表面
func (c *GameCore) PointerLeave() {
	c.hasPointer = false
	if c.hovered != 0 {
		c.Floating.HoverLeave(c.hovered)
		c.hovered = 0
	}
}

// Hovered 返回当前悬停的元素ID（0 表示没有）
func (c *GameCore) Hovered() ecs.EntityID {
	return c.hovered
}

// Close 释放订阅
func (c *GameCore) Close() {
	c.Floating.Close()
}

func (c *GameCore) updateHover() {
	id, _ := c.Floating.ElementAt(c.pointer)
	if id == c.hovered {
		return
	}
	if c.hovered != 0 {
		c.Floating.HoverLeave(c.hovered)
	}
	if id != 0 {
		c.Floating.HoverEnter(id)
	}
	c.hovered = id
}
