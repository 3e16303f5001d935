package systems

import (
	"log"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/utils"
)

// CardBoard 精灵飞行系统需要的游戏状态操作
// 由 game.GameState 实现
type CardBoard interface {
	VisibleCards() []*components.TargetCardComponent
	HideCard(id ecs.EntityID) bool
	OnHit(source game.HitSource)
	OnMiss()
}

// CardGeometry 提供卡片在视口中的渲染矩形
// 返回 false 表示该卡片当前没有几何信息，不参与本次命中检测
type CardGeometry interface {
	CardRect(id ecs.EntityID, vp game.Viewport) (utils.Rect, bool)
}

// Edge 视口边缘
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// RandomEdgePoint 生成视口外侧的随机出生点
//
// 先以 floor(r*4) 选择上、右、下、左中的一条边，
// 再在该边方向上均匀取坐标，另一轴固定在视口外 offset 处。
func RandomEdgePoint(rng utils.RandomSource, width, height, offset float64) utils.Point {
	switch Edge(utils.RandomIntn(rng, 4)) {
	case EdgeTop:
		return utils.Point{X: rng.Float64() * width, Y: -offset}
	case EdgeRight:
		return utils.Point{X: width + offset, Y: rng.Float64() * height}
	case EdgeBottom:
		return utils.Point{X: rng.Float64() * width, Y: height + offset}
	default:
		return utils.Point{X: -offset, Y: rng.Float64() * height}
	}
}

// SpriteFlightSystem 精灵飞行状态机
//
// 状态：空闲 → Launching → Returning → 空闲。
// 空闲时点击触发一次新的飞行；飞行期间的点击被丢弃。
// 阶段的结束由渲染层的动画完成事件驱动（CompletePhase），
// 系统本身不计时。Launching 结束时对终点做命中检测。
type SpriteFlightSystem struct {
	board    CardBoard
	geometry CardGeometry
	tracker  *game.ViewportTracker
	cfg      config.FlightConfig
	rng      utils.RandomSource

	active       *components.SpriteFlightComponent
	lastFlightID int64
}

// NewSpriteFlightSystem 创建精灵飞行系统
//
// 参数：
//   - tracker: 视口跟踪器（出生点范围和动画时长）
//   - board: 卡片和计分（通常是 GameState）
//   - geometry: 卡片矩形提供者
//   - cfg: 飞行配置
//   - rng: 随机数来源
func NewSpriteFlightSystem(tracker *game.ViewportTracker, board CardBoard, geometry CardGeometry, cfg config.FlightConfig, rng utils.RandomSource) *SpriteFlightSystem {
	return &SpriteFlightSystem{
		board:    board,
		geometry: geometry,
		tracker:  tracker,
		cfg:      cfg,
		rng:      rng,
	}
}

// SetGeometry 替换卡片矩形提供者
func (s *SpriteFlightSystem) SetGeometry(geometry CardGeometry) {
	s.geometry = geometry
}

// IsIdle 当前是否没有进行中的飞行
func (s *SpriteFlightSystem) IsIdle() bool {
	return s.active == nil
}

// Active 返回进行中的飞行快照
func (s *SpriteFlightSystem) Active() (components.SpriteFlightComponent, bool) {
	if s.active == nil {
		return components.SpriteFlightComponent{}, false
	}
	return *s.active, true
}

// PhaseDuration 返回每个阶段的动画时长（秒）
func (s *SpriteFlightSystem) PhaseDuration() float64 {
	if s.tracker.Viewport().ReducedMotion {
		return s.cfg.ReducedMotionDuration
	}
	return s.cfg.Duration
}

// Click 处理对游戏表面的点击
// 返回 true 表示开始了新的飞行；飞行进行中时点击被忽略
func (s *SpriteFlightSystem) Click(p utils.Point) bool {
	if s.active != nil {
		return false
	}

	s.lastFlightID++
	s.active = &components.SpriteFlightComponent{
		ID:          s.lastFlightID,
		Phase:       components.FlightLaunching,
		Start:       s.edgePoint(),
		End:         p,
		SpriteImage: s.cfg.LaunchSprite,
	}

	log.Printf("[SpriteFlightSystem] flight %d launching (%.0f,%.0f) -> (%.0f,%.0f)",
		s.active.ID, s.active.Start.X, s.active.Start.Y, p.X, p.Y)
	return true
}

// CompletePhase 处理动画阶段完成事件
//
// 只有与当前飞行的 ID 和阶段都匹配时才生效，
// 重复投递或过期的完成事件返回 false 且不产生任何影响。
func (s *SpriteFlightSystem) CompletePhase(flightID int64, phase components.FlightPhase) bool {
	if s.active == nil || s.active.ID != flightID || s.active.Phase != phase {
		return false
	}

	switch phase {
	case components.FlightLaunching:
		s.resolveLanding(s.active.End)

		s.active.Phase = components.FlightReturning
		s.active.Start = s.active.End
		s.active.End = s.edgePoint()
		s.active.SpriteImage = s.cfg.ReturnSprite
		log.Printf("[SpriteFlightSystem] flight %d returning -> (%.0f,%.0f)", flightID, s.active.End.X, s.active.End.Y)

	case components.FlightReturning:
		log.Printf("[SpriteFlightSystem] flight %d finished", flightID)
		s.active = nil
	}
	return true
}

// resolveLanding 命中检测
// 先对所有可见卡片取矩形快照，再修改状态
func (s *SpriteFlightSystem) resolveLanding(p utils.Point) {
	type candidate struct {
		id   ecs.EntityID
		rect utils.Rect
	}

	vp := s.tracker.Viewport()
	visible := s.board.VisibleCards()
	candidates := make([]candidate, 0, len(visible))
	for _, card := range visible {
		if s.geometry == nil {
			break
		}
		rect, ok := s.geometry.CardRect(card.ID, vp)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{id: card.ID, rect: rect.Expand(s.cfg.HitTolerance)})
	}

	for _, c := range candidates {
		if c.rect.Contains(p) {
			if s.board.HideCard(c.id) {
				s.board.OnHit(game.CardSource(c.id))
				return
			}
		}
	}
	s.board.OnMiss()
}

func (s *SpriteFlightSystem) edgePoint() utils.Point {
	vp := s.tracker.Viewport()
	return RandomEdgePoint(s.rng, vp.Width, vp.Height, s.cfg.SpawnOffset)
}
