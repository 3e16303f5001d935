package systems

import (
	"log"
	"math"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

// FloatingTickInterval 漂浮元素物理步进间隔（约 60fps）
const FloatingTickInterval = 1.0 / 60.0

// maxTicksPerUpdate 单次 Update 最多补的步数（窗口卡顿后不追帧）
const maxTicksPerUpdate = 4

// HitRecorder 接收确认的命中
// 由 game.GameState 实现
type HitRecorder interface {
	OnHit(source game.HitSource)
}

// FloatingElementSystem 漂浮元素系统
//
// 职责：
//   - 按视口尺寸批量生成金币和彩色小球
//   - 每个物理步进移动元素，碰到视口边界时反弹
//   - 处理悬停（仅外观）和点击清除（计分）
//
// 视口的移动端标记或"减少动态效果"偏好变化时整体重新生成；
// 普通的尺寸变化只更新边界，下一步进时把元素夹回视口内。
type FloatingElementSystem struct {
	elements *ecs.EntityManager[*components.FloatingElementComponent]
	tracker  *game.ViewportTracker
	hits     HitRecorder
	cfg      config.FloatingConfig
	rng      utils.RandomSource

	accumulator float64
	unsubscribe func()
}

// NewFloatingElementSystem 创建漂浮元素系统并订阅视口变化
//
// 参数：
//   - tracker: 视口跟踪器
//   - hits: 命中接收者（通常是 GameState）
//   - cfg: 漂浮元素配置
//   - rng: 随机数来源
func NewFloatingElementSystem(tracker *game.ViewportTracker, hits HitRecorder, cfg config.FloatingConfig, rng utils.RandomSource) *FloatingElementSystem {
	s := &FloatingElementSystem{
		elements: ecs.NewEntityManager[*components.FloatingElementComponent](),
		tracker:  tracker,
		hits:     hits,
		cfg:      cfg,
		rng:      rng,
	}
	s.unsubscribe = tracker.Subscribe(s.onViewportChanged)
	return s
}

// Close 取消视口订阅
func (s *FloatingElementSystem) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Initialize 清除现有元素并按当前视口生成新的一批
func (s *FloatingElementSystem) Initialize() {
	s.generate(s.tracker.Viewport())
}

func (s *FloatingElementSystem) onViewportChanged(old, current game.Viewport) {
	if old.IsMobile() != current.IsMobile() || old.ReducedMotion != current.ReducedMotion {
		log.Printf("[FloatingElementSystem] viewport class changed (mobile %v -> %v, reduced %v -> %v), regenerating",
			old.IsMobile(), current.IsMobile(), old.ReducedMotion, current.ReducedMotion)
		s.generate(current)
	}
}

// generate 按固定的随机数抽取顺序生成元素：
// 种类、尺寸、透明度、速度、颜色、X、Y、旋转角、方向、旋转速度
func (s *FloatingElementSystem) generate(vp game.Viewport) {
	s.elements.Clear()
	s.accumulator = 0

	countRange := s.cfg.DesktopCount
	if vp.IsMobile() {
		countRange = s.cfg.MobileCount
	}
	count := countRange.Min + utils.RandomIntn(s.rng, countRange.Size())

	for i := 0; i < count; i++ {
		e := &components.FloatingElementComponent{Kind: components.FloatingOrb}

		if s.rng.Float64() > 1-s.cfg.CoinChance {
			e.Kind = components.FloatingCoin
		}
		sizeRange := s.cfg.OrbSize
		if e.Kind == components.FloatingCoin {
			sizeRange = s.cfg.CoinSize
		}
		e.Size = float64(sizeRange.Min + utils.RandomIntn(s.rng, sizeRange.Size()))
		e.Opacity = utils.RandomRange(s.rng, s.cfg.Opacity.Min, s.cfg.Opacity.Span())

		if vp.ReducedMotion {
			e.BaseSpeed = s.cfg.ReducedMotionSpeed
		} else {
			e.BaseSpeed = utils.RandomRange(s.rng, s.cfg.Speed.Min, s.cfg.Speed.Span())
		}

		e.Color = s.cfg.Colors[utils.RandomIntn(s.rng, len(s.cfg.Colors))]
		e.X = s.rng.Float64() * math.Max(vp.Width-e.Size, 0)
		e.Y = s.rng.Float64() * math.Max(vp.Height-e.Size, 0)
		e.Rotation = s.rng.Float64() * 360
		e.Direction = s.rng.Float64() * 2 * math.Pi

		if !vp.ReducedMotion {
			e.RotationSpeed = (s.rng.Float64() - 0.5) * s.cfg.RotationSpeedSpan
		}

		e.ID = s.elements.CreateEntity(e)
	}

	log.Printf("[FloatingElementSystem] generated %d elements for %.0fx%.0f", count, vp.Width, vp.Height)
}

// Update 按固定步长推进物理
// 减少动态效果时元素静止
func (s *FloatingElementSystem) Update(deltaTime float64) {
	if s.tracker.Viewport().ReducedMotion {
		s.accumulator = 0
		return
	}

	s.accumulator += deltaTime
	ticks := 0
	for s.accumulator >= FloatingTickInterval && ticks < maxTicksPerUpdate {
		s.Tick()
		s.accumulator -= FloatingTickInterval
		ticks++
	}
	if ticks == maxTicksPerUpdate {
		s.accumulator = 0
	}
}

// Tick 执行一次物理步进
//
// 每个元素：按方向移动固定步长；X 越界时 direction = π - direction 并夹回，
// Y 越界时 direction = -direction 并夹回；以 TurnChance 的概率随机偏转；
// 最后累加旋转角。位移与 BaseSpeed 无关。
func (s *FloatingElementSystem) Tick() {
	vp := s.tracker.Viewport()
	if vp.ReducedMotion || s.elements.Len() == 0 {
		return
	}

	s.elements.Each(func(_ ecs.EntityID, e *components.FloatingElementComponent) {
		e.X += math.Cos(e.Direction) * s.cfg.Step
		e.Y += math.Sin(e.Direction) * s.cfg.Step

		maxX := math.Max(vp.Width-e.Size, 0)
		if e.X < 0 || e.X > maxX {
			e.Direction = math.Pi - e.Direction
			e.X = utils.Clamp(e.X, 0, maxX)
		}

		maxY := math.Max(vp.Height-e.Size, 0)
		if e.Y < 0 || e.Y > maxY {
			e.Direction = -e.Direction
			e.Y = utils.Clamp(e.Y, 0, maxY)
		}

		if s.rng.Float64() < s.cfg.TurnChance {
			e.Direction += (s.rng.Float64() - 0.5) * s.cfg.TurnSpan
		}

		e.Rotation += e.RotationSpeed
	})
	s.elements.Touch()
}

// HoverEnter 指针进入元素：完全不透明并加速
// 重复进入同一元素不会叠加
func (s *FloatingElementSystem) HoverEnter(id ecs.EntityID) {
	s.elements.Modify(id, func(e *components.FloatingElementComponent) {
		if e.Hovered {
			return
		}
		e.Hovered = true
		e.Opacity = 1
		e.BaseSpeed *= s.cfg.HoverSpeedFactor
	})
}

// HoverLeave 指针离开元素：透明度降低并恢复速度
func (s *FloatingElementSystem) HoverLeave(id ecs.EntityID) {
	s.elements.Modify(id, func(e *components.FloatingElementComponent) {
		if !e.Hovered {
			return
		}
		e.Hovered = false
		e.Opacity = math.Max(e.Opacity-s.cfg.HoverLeaveOpacityDrop, 0)
		e.BaseSpeed /= s.cfg.HoverSpeedFactor
	})
}

// Click 清除元素
// 只有元素确实被移除时才计分，重复点击同一ID是空操作
func (s *FloatingElementSystem) Click(id ecs.EntityID) bool {
	if !s.elements.DestroyEntity(id) {
		return false
	}
	log.Printf("[FloatingElementSystem] element %d cleared, %d remaining", id, s.elements.Len())
	if s.hits != nil {
		s.hits.OnHit(game.FloatingSource(id))
	}
	return true
}

// ElementAt 返回矩形覆盖点 p 的最上层元素（ID 最大者）
// 圆形只是外观，点击区域是元素的整个正方形
func (s *FloatingElementSystem) ElementAt(p utils.Point) (ecs.EntityID, bool) {
	var found ecs.EntityID
	s.elements.Each(func(id ecs.EntityID, e *components.FloatingElementComponent) {
		if e.Bounds().Contains(p) {
			found = id
		}
	})
	return found, found != 0
}

// Place 用给定的元素替换当前全部元素，返回分配的ID
// 场景验证工具用它构造确定的初始状态；传入元素的 ID 字段会被忽略
func (s *FloatingElementSystem) Place(elements ...components.FloatingElementComponent) []ecs.EntityID {
	s.elements.Clear()
	s.accumulator = 0

	ids := make([]ecs.EntityID, 0, len(elements))
	for _, e := range elements {
		placed := e
		placed.ID = s.elements.CreateEntity(&placed)
		ids = append(ids, placed.ID)
	}
	return ids
}

// Element 返回指定元素
func (s *FloatingElementSystem) Element(id ecs.EntityID) (*components.FloatingElementComponent, bool) {
	return s.elements.GetComponent(id)
}

// Elements 按ID升序返回所有元素的快照
func (s *FloatingElementSystem) Elements() []components.FloatingElementComponent {
	result := make([]components.FloatingElementComponent, 0, s.elements.Len())
	s.elements.Each(func(_ ecs.EntityID, e *components.FloatingElementComponent) {
		result = append(result, *e)
	})
	return result
}

// Len 返回当前元素数量
func (s *FloatingElementSystem) Len() int {
	return s.elements.Len()
}

// Version 返回元素集合版本号
func (s *FloatingElementSystem) Version() uint64 {
	return s.elements.Version()
}
