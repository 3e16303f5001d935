package systems

import (
	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/utils"
)

// SpriteFrame 精灵在当前帧的渲染状态
type SpriteFrame struct {
	Position utils.Point // 精灵中心
	Opacity  float64
	Image    string
	Phase    components.FlightPhase
}

// SpriteAnimationSystem 精灵补间动画
//
// 跟随 SpriteFlightSystem 的当前飞行播放 Start → End 的缓出动画，
// 每个阶段播放完毕时向飞行系统投递一次 CompletePhase。
// 第一阶段透明度随进度渐入；飞行结束后在终点淡出。
type SpriteAnimationSystem struct {
	flights *SpriteFlightSystem

	tracking  bool
	flightID  int64
	phase     components.FlightPhase
	elapsed   float64
	duration  float64
	completed bool

	frame       SpriteFrame
	fadeElapsed float64
	fadeTotal   float64
}

// NewSpriteAnimationSystem 创建精灵动画系统
func NewSpriteAnimationSystem(flights *SpriteFlightSystem) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{flights: flights}
}

// Update 推进动画
func (s *SpriteAnimationSystem) Update(deltaTime float64) {
	flight, ok := s.flights.Active()
	if !ok {
		s.tracking = false
		if s.fadeElapsed < s.fadeTotal {
			s.fadeElapsed += deltaTime
		}
		return
	}

	if !s.tracking || flight.ID != s.flightID || flight.Phase != s.phase {
		s.tracking = true
		s.flightID = flight.ID
		s.phase = flight.Phase
		// 本帧的时间计入新阶段，阶段总长与 PhaseDuration 一致
		s.elapsed = deltaTime
		s.duration = s.flights.PhaseDuration()
		s.completed = false
	} else {
		s.elapsed += deltaTime
	}

	progress := s.Progress()
	eased := utils.EaseOutCubic(progress)
	opacity := 1.0
	if flight.Phase == components.FlightLaunching {
		opacity = eased
	}
	s.frame = SpriteFrame{
		Position: utils.LerpPoint(flight.Start, flight.End, eased),
		Opacity:  opacity,
		Image:    flight.SpriteImage,
		Phase:    flight.Phase,
	}

	if progress >= 1 && !s.completed {
		s.completed = true
		s.flights.CompletePhase(s.flightID, s.phase)
		if s.phase == components.FlightReturning {
			s.fadeElapsed = 0
			s.fadeTotal = s.duration
		}
	}
}

// Progress 返回当前阶段进度 [0, 1]
func (s *SpriteAnimationSystem) Progress() float64 {
	if !s.tracking {
		return 0
	}
	if s.duration <= 0 {
		return 1
	}
	return utils.Clamp(s.elapsed/s.duration, 0, 1)
}

// Frame 返回精灵当前的渲染状态
// 没有飞行且淡出已结束时返回 false
func (s *SpriteAnimationSystem) Frame() (SpriteFrame, bool) {
	if s.tracking {
		return s.frame, true
	}
	if s.fadeTotal > 0 && s.fadeElapsed < s.fadeTotal {
		f := s.frame
		f.Opacity = 1 - s.fadeElapsed/s.fadeTotal
		return f, true
	}
	return SpriteFrame{}, false
}
