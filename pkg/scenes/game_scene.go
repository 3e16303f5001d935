package scenes

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/systems"
	"github.com/decker502/stealhome/pkg/utils"
)

// 过渡动画时长（秒）
const (
	counterSwapDuration = 0.3 // 分数切换：新数字上滑淡入
	cardExitDuration    = 0.3 // 卡片被命中后缩小淡出
)

// volumeStep 每次按键调整的音量
const volumeStep = 0.1

// exitingCard 正在播放退出动画的卡片
type exitingCard struct {
	title   string
	rect    utils.Rect
	elapsed float64
}

// GameScene 游戏场景（窗口宿主）
//
// 职责：
//   - 把鼠标/触摸输入转换为 GameCore 的指针事件
//   - 绘制背景、漂浮元素、标题、计数器、卡片和精灵
//   - 处理减少动态效果（M）、音效开关（S）和音量（-/+）并持久化
//
// 核心状态全部由 GameCore 持有，场景只保存纯视觉的过渡状态。
type GameScene struct {
	core     *systems.GameCore
	settings *game.SettingsManager
	face     *text.GoXFace

	// 分数切换动画
	shownScore    int
	counterSwap   float64
	previousScore int

	exiting       []exitingCard
	lastCardRects map[ecs.EntityID]utils.Rect
	unsubscribe   func()
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - core: 交互核心
//   - settings: 设置管理器（可为 nil，此时开关不持久化）
func NewGameScene(core *systems.GameCore, settings *game.SettingsManager) *GameScene {
	s := &GameScene{
		core:        core,
		settings:    settings,
		face:        text.NewGoXFace(basicfont.Face7x13),
		counterSwap: counterSwapDuration,

		lastCardRects: make(map[ecs.EntityID]utils.Rect),
	}
	s.unsubscribe = core.State.Subscribe(s.onSignal)
	return s
}

// onSignal 根据核心信号启动视觉过渡
func (s *GameScene) onSignal(signal game.Signal) {
	if signal.Score != s.shownScore {
		s.previousScore = s.shownScore
		s.shownScore = signal.Score
		s.counterSwap = 0
	}

	if signal.Kind == game.SignalCardHit {
		// 卡片已隐藏，按隐藏前的位置播放退出动画
		if card, ok := s.core.State.Card(signal.ID); ok {
			s.exiting = append(s.exiting, exitingCard{
				title: cardLabel(card.ID),
				rect:  s.lastCardRects[card.ID],
			})
		}
	}
}

// Update 更新场景
func (s *GameScene) Update(deltaTime float64) {
	s.snapshotCardRects()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		s.toggleReducedMotion()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		s.toggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		s.adjustVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		s.adjustVolume(-volumeStep)
	}

	pointer := GetPointerState()
	if pointer.JustPressed {
		cleared, launched := s.core.PointerDown(pointer.Position)
		log.Printf("[GameScene] click (%.0f,%.0f): cleared=%d launched=%v",
			pointer.Position.X, pointer.Position.Y, cleared, launched)
		if pointer.IsTouch {
			// 触摸没有悬停语义
			s.core.PointerLeave()
		}
	} else if !pointer.IsTouch {
		if s.insideViewport(pointer.Position) {
			s.core.PointerMove(pointer.Position)
		} else {
			s.core.PointerLeave()
		}
	}

	s.core.Update(deltaTime)

	if s.counterSwap < counterSwapDuration {
		s.counterSwap += deltaTime
	}
	alive := s.exiting[:0]
	for _, c := range s.exiting {
		c.elapsed += deltaTime
		if c.elapsed < cardExitDuration {
			alive = append(alive, c)
		}
	}
	s.exiting = alive
}

// SaveOnExit 保存设置
func (s *GameScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings on exit: %v", err)
		return false
	}
	return true
}

// Close 取消订阅并释放核心
func (s *GameScene) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.core.Close()
}

func (s *GameScene) toggleReducedMotion() {
	reduced := !s.core.Tracker.Viewport().ReducedMotion
	s.core.Tracker.SetReducedMotion(reduced)

	if s.settings != nil {
		s.settings.SetReducedMotion(reduced)
		s.saveSettings()
	}
}

func (s *GameScene) toggleSound() {
	if s.settings == nil {
		return
	}
	s.settings.SetSoundEnabled(!s.settings.GetSettings().SoundEnabled)
	s.saveSettings()
}

func (s *GameScene) adjustVolume(delta float64) {
	if s.settings == nil {
		return
	}
	s.settings.SetSoundVolume(s.settings.GetSettings().SoundVolume + delta)
	s.saveSettings()
}

func (s *GameScene) saveSettings() {
	if err := s.settings.Save(); err != nil {
		log.Printf("[GameScene] Warning: failed to save settings: %v", err)
	}
}

// snapshotCardRects 记录本帧开始时可见卡片的位置
// 卡片在帧内被命中后，退出动画仍从原位置播放
func (s *GameScene) snapshotCardRects() {
	clear(s.lastCardRects)
	for _, p := range s.core.Geometry.Layout(s.core.Tracker.Viewport()) {
		s.lastCardRects[p.Card.ID] = p.Rect
	}
}

func (s *GameScene) insideViewport(p utils.Point) bool {
	vp := s.core.Tracker.Viewport()
	return p.X >= 0 && p.Y >= 0 && p.X < vp.Width && p.Y < vp.Height
}
