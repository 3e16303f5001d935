// tui 是偷家小游戏的终端宿主
//
// 终端的每个字符格对应 8×16 个虚拟像素，游戏核心在虚拟像素坐标中运行，
// 因此终端尺寸变化时布局规则（移动端断点、卡片网格）与窗口版一致。
//
// 用法：
//
//	go run ./cmd/tui [--config data/game.yaml] [--seed 42] [--reduced-motion] [--mute] [--verbose]
//
// 操作：鼠标左键点击，M 切换减少动态效果，S 切换音效，Q 或 Esc 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep/speaker"

	"github.com/decker502/stealhome/internal/audio"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/game"
	"github.com/decker502/stealhome/pkg/systems"
	"github.com/decker502/stealhome/pkg/utils"
)

var (
	verbose       = flag.Bool("verbose", false, "把详细日志写入 stealhome-tui.log")
	configPath    = flag.String("config", "", "游戏配置文件路径（默认使用内置配置）")
	seed          = flag.Int64("seed", 0, "随机种子（0 表示使用当前时间）")
	reducedMotion = flag.Bool("reduced-motion", false, "减少动态效果")
	mute          = flag.Bool("mute", false, "禁用音效")
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

func main() {
	flag.Parse()

	logFile, err := setupLogging(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	host, err := newTerminalHost()
	if err != nil {
		fmt.Fprintf(os.Stderr, "终端初始化失败: %v\n", err)
		os.Exit(1)
	}
	defer host.cleanup()

	host.run()
}

// setupLogging 终端被游戏画面占用，日志只能写入文件
func setupLogging(verbose bool) (*os.File, error) {
	if !verbose {
		log.SetOutput(io.Discard)
		return nil, nil
	}
	f, err := os.OpenFile("stealhome-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// terminalHost 持有终端屏幕和交互核心
// 核心只在 run 所在的 goroutine 中访问
type terminalHost struct {
	screen   tcell.Screen
	core     *systems.GameCore
	settings *game.SettingsManager
	cues     *speakerCues

	buttons     tcell.ButtonMask
	unsubscribe func()

	// 分数变化后计数器短暂反色
	flash float64
	// 最近一次未命中的提示
	missFlash float64
}

func newTerminalHost() (*terminalHost, error) {
	gameConfig, err := config.ResolveGameConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	settings := game.OpenSettingsManager("stealhome")
	reduced := *reducedMotion || settings.GetSettings().ReducedMotion || utils.PrefersReducedMotion()

	h := &terminalHost{
		screen:   screen,
		settings: settings,
	}

	var cuePlayer game.CuePlayer
	if !*mute {
		h.cues = newSpeakerCues(settings)
		if err := h.cues.init(); err != nil {
			// 没有声卡也能玩
			log.Printf("[TUI] Warning: audio disabled: %v", err)
			h.cues = nil
		} else {
			cuePlayer = h.cues
		}
	}

	cols, rows := screen.Size()
	vp := game.Viewport{
		Width:         float64(cols) * unitsPerCol,
		Height:        float64(rows) * unitsPerRow,
		ReducedMotion: reduced,
	}
	h.core = systems.NewGameCore(gameConfig, vp, cuePlayer, utils.NewRandomSource(*seed))
	h.unsubscribe = h.core.State.Subscribe(h.onSignal)

	log.Printf("[TUI] Started: %dx%d cells, %d floating elements", cols, rows, h.core.Floating.Len())
	return h, nil
}

func (h *terminalHost) onSignal(signal game.Signal) {
	switch signal.Kind {
	case game.SignalCardHit, game.SignalEntityCleared:
		h.flash = 0.3
	case game.SignalMiss:
		h.missFlash = 0.5
	}
}

func (h *terminalHost) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// PollEvent 在 Fini 之后返回 nil，轮询 goroutine 随之退出
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	h.draw()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !h.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			h.update(dt)
			h.draw()
		}
	}
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (h *terminalHost) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'm', 'M':
				h.toggleReducedMotion()
			case 's', 'S':
				h.toggleSound()
			}
		}

	case *tcell.EventMouse:
		col, row := ev.Position()
		p := cellToPoint(col, row)
		buttons := ev.Buttons()

		if buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0 {
			cleared, launched := h.core.PointerDown(p)
			log.Printf("[TUI] click cell (%d,%d) → (%.0f,%.0f): cleared=%d launched=%v",
				col, row, p.X, p.Y, cleared, launched)
		} else {
			h.core.PointerMove(p)
		}
		h.buttons = buttons

	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.core.Tracker.Resize(float64(cols)*unitsPerCol, float64(rows)*unitsPerRow)
		h.screen.Sync()

	case *tcell.EventFocus:
		if !ev.Focused {
			h.core.PointerLeave()
		}
	}
	return true
}

func (h *terminalHost) update(dt float64) {
	h.core.Update(dt)
	h.flash = max(h.flash-dt, 0)
	h.missFlash = max(h.missFlash-dt, 0)
}

func (h *terminalHost) toggleReducedMotion() {
	reduced := !h.core.Tracker.Viewport().ReducedMotion
	h.core.Tracker.SetReducedMotion(reduced)
	h.settings.SetReducedMotion(reduced)
	h.saveSettings()
}

func (h *terminalHost) toggleSound() {
	h.settings.SetSoundEnabled(!h.settings.GetSettings().SoundEnabled)
	h.saveSettings()
}

func (h *terminalHost) saveSettings() {
	if err := h.settings.Save(); err != nil {
		log.Printf("[TUI] Warning: failed to save settings: %v", err)
	}
}

func (h *terminalHost) cleanup() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	h.core.Close()
	if h.cues != nil {
		speaker.Close()
	}
	h.screen.Fini()
}

// 编译期检查
var _ game.CuePlayer = (*speakerCues)(nil)

// speakerCues 通过 beep speaker 播放合成音效
type speakerCues struct {
	settings *game.SettingsManager
}

func newSpeakerCues(settings *game.SettingsManager) *speakerCues {
	return &speakerCues{settings: settings}
}

func (c *speakerCues) init() error {
	return speaker.Init(audio.SampleRate, audio.SampleRate.N(100*time.Millisecond))
}

// PlayCue 实现 game.CuePlayer
func (c *speakerCues) PlayCue(cue game.Cue) error {
	s := c.settings.GetSettings()
	if !s.SoundEnabled {
		return nil
	}

	switch cue {
	case game.CueSuccess:
		speaker.Play(audio.SuccessChime(s.SoundVolume))
	case game.CueFail:
		speaker.Play(audio.FailBuzz(s.SoundVolume))
	default:
		return fmt.Errorf("unknown cue %s", cue)
	}
	return nil
}
