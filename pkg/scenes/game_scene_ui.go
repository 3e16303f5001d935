package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/ecs"
	"github.com/decker502/stealhome/pkg/utils"
)

// 调色板
var (
	backgroundColor = color.NRGBA{R: 58, G: 74, B: 110, A: 255}
	overlayColor    = color.NRGBA{R: 0, G: 0, B: 0, A: 77}
	coinColor       = color.NRGBA{R: 202, G: 138, B: 4, A: 255}
	coinHighlight   = color.NRGBA{R: 253, G: 224, B: 71, A: 255}
	counterBgColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
	counterFgColor  = color.NRGBA{R: 220, G: 38, B: 38, A: 255}
	cardBgColor     = color.NRGBA{R: 255, G: 255, B: 255, A: 242}
	cardTextColor   = color.NRGBA{R: 31, G: 41, B: 55, A: 255}
	launchColor     = color.NRGBA{R: 244, G: 114, B: 182, A: 255}
	returnColor     = color.NRGBA{R: 96, G: 165, B: 250, A: 255}
	hintColor       = color.NRGBA{R: 229, G: 231, B: 235, A: 200}
)

// orbColors 小球颜色标记 → 实际颜色
var orbColors = map[string]color.NRGBA{
	"red":    {R: 248, G: 113, B: 113, A: 255},
	"blue":   {R: 96, G: 165, B: 250, A: 255},
	"green":  {R: 74, G: 222, B: 128, A: 255},
	"yellow": {R: 250, G: 204, B: 21, A: 255},
	"purple": {R: 192, G: 132, B: 252, A: 255},
	"pink":   {R: 244, G: 114, B: 182, A: 255},
}

// cardImageTints 卡片图片区域的占位色（按卡片ID循环）
var cardImageTints = []color.NRGBA{
	{R: 254, G: 215, B: 170, A: 255},
	{R: 187, G: 247, B: 208, A: 255},
	{R: 191, G: 219, B: 254, A: 255},
	{R: 221, G: 214, B: 254, A: 255},
}

// Draw 绘制场景
func (s *GameScene) Draw(screen *ebiten.Image) {
	vp := s.core.Tracker.Viewport()

	screen.Fill(backgroundColor)
	vector.DrawFilledRect(screen, 0, 0, float32(vp.Width), float32(vp.Height), overlayColor, false)

	s.drawFloatingElements(screen)
	s.drawTitle(screen, vp.Width, vp.IsMobile())
	s.drawCounter(screen, vp.Width, vp.Height)
	s.drawCards(screen)
	s.drawSprite(screen, vp.Width)
	s.drawHint(screen, vp.Height, vp.ReducedMotion)
}

func (s *GameScene) drawFloatingElements(screen *ebiten.Image) {
	for _, e := range s.core.Floating.Elements() {
		r := e.Size / 2
		cx, cy := e.X+r, e.Y+r

		if e.Kind == components.FloatingCoin {
			vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), withAlpha(coinColor, e.Opacity), true)

			// 高光随旋转角绕圆心转动
			angle := e.Rotation * math.Pi / 180
			hx := cx + math.Cos(angle)*r*0.35
			hy := cy + math.Sin(angle)*r*0.35
			vector.DrawFilledCircle(screen, float32(hx), float32(hy), float32(r*0.45), withAlpha(coinHighlight, e.Opacity), true)
			continue
		}

		c, ok := orbColors[e.Color]
		if !ok {
			c = orbColors["blue"]
		}
		// 小球的透明度在元素和颜色层各应用一次
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), withAlpha(c, e.Opacity*e.Opacity), true)
	}
}

func (s *GameScene) drawTitle(screen *ebiten.Image, width float64, mobile bool) {
	titleScale, subtitleScale := 5.0, 2.0
	if mobile {
		titleScale, subtitleScale = 3.0, 1.5
	}
	s.drawText(screen, "STEAL HOME", width/2, config.TitleTop, titleScale, color.White)
	s.drawText(screen, "click anywhere to start", width/2, config.TitleTop+13*titleScale+4, subtitleScale, color.White)
}

func (s *GameScene) drawCounter(screen *ebiten.Image, width, height float64) {
	rect := config.CounterRect(s.shownScore, width, height)
	vector.DrawFilledRect(screen, float32(rect.Left), float32(rect.Top), float32(rect.Width), float32(rect.Height), counterBgColor, true)

	scale := 6.0
	if config.IsMobileWidth(width) {
		scale = 4.0
	}
	center := rect.Center()
	top := center.Y - 13*scale/2

	p := utils.EaseOutQuad(utils.Clamp(s.counterSwap/counterSwapDuration, 0, 1))
	if p < 1 {
		s.drawTextAlpha(screen, strconv.Itoa(s.previousScore), center.X, top-20*p, scale, counterFgColor, 1-p)
	}
	s.drawTextAlpha(screen, strconv.Itoa(s.shownScore), center.X, top+20*(1-p), scale, counterFgColor, p)
}

func (s *GameScene) drawCards(screen *ebiten.Image) {
	cursorX, cursorY := ebiten.CursorPosition()
	cursor := utils.Point{X: float64(cursorX), Y: float64(cursorY)}

	for _, p := range s.core.Geometry.Layout(s.core.Tracker.Viewport()) {
		rect := p.Rect
		if rect.Contains(cursor) {
			// 悬停时上浮
			rect.Top--
		}
		s.drawCard(screen, p.Card.ID, rect, 1)
	}

	for _, c := range s.exiting {
		t := utils.EaseOutQuad(c.elapsed / cardExitDuration)
		scale := 1 - 0.2*t
		center := c.rect.Center()
		rect := utils.Rect{
			Left:   center.X - c.rect.Width*scale/2,
			Top:    center.Y - c.rect.Height*scale/2,
			Width:  c.rect.Width * scale,
			Height: c.rect.Height * scale,
		}
		s.drawCardLabel(screen, c.title, rect, 1-t)
	}
}

func (s *GameScene) drawCard(screen *ebiten.Image, id ecs.EntityID, rect utils.Rect, alpha float64) {
	s.drawCardLabel(screen, cardLabel(id), rect, alpha)

	tint := cardImageTints[int(id-1)%len(cardImageTints)]
	imageHeight := rect.Width * config.CardImageAspect
	vector.DrawFilledRect(screen, float32(rect.Left), float32(rect.Top), float32(rect.Width), float32(imageHeight), withAlpha(tint, alpha), false)
}

// drawCardLabel 绘制卡片底板和标题
func (s *GameScene) drawCardLabel(screen *ebiten.Image, title string, rect utils.Rect, alpha float64) {
	vector.DrawFilledRect(screen, float32(rect.Left), float32(rect.Top), float32(rect.Width), float32(rect.Height), withAlpha(cardBgColor, alpha), true)
	vector.StrokeRect(screen, float32(rect.Left), float32(rect.Top), float32(rect.Width), float32(rect.Height), 1, withAlpha(cardTextColor, alpha*0.2), true)

	textTop := rect.Top + rect.Width*config.CardImageAspect + 16
	s.drawTextAlpha(screen, title, rect.Left+rect.Width/2, textTop, 2, cardTextColor, alpha)
}

func (s *GameScene) drawSprite(screen *ebiten.Image, width float64) {
	frame, ok := s.core.Animation.Frame()
	if !ok {
		return
	}

	c := launchColor
	if frame.Phase == components.FlightReturning {
		c = returnColor
	}
	r := config.SpriteSize(width) / 2
	x, y := float32(frame.Position.X), float32(frame.Position.Y)
	vector.DrawFilledCircle(screen, x, y, float32(r), withAlpha(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, frame.Opacity), true)
	vector.DrawFilledCircle(screen, x, y, float32(r-4), withAlpha(c, frame.Opacity), true)
}

func (s *GameScene) drawHint(screen *ebiten.Image, height float64, reduced bool) {
	hint := fmt.Sprintf("[M] reduced motion: %s   %s   [F11] fullscreen", onOff(reduced), s.soundHint())

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, height-20)
	op.ColorScale.ScaleWithColor(hintColor)
	text.Draw(screen, hint, s.face, op)
}

// soundHint 音效开关和音量提示
func (s *GameScene) soundHint() string {
	if s.settings == nil {
		return "[S] sound: n/a"
	}
	settings := s.settings.GetSettings()
	if !settings.SoundEnabled {
		return "[S] sound: off"
	}
	return fmt.Sprintf("[S] sound: %d%% [-/+]", int(math.Round(settings.SoundVolume*100)))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// drawText 以 (x, top) 为顶部中点绘制放大后的文字
func (s *GameScene) drawText(screen *ebiten.Image, str string, x, top, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, top)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, str, s.face, op)
}

func (s *GameScene) drawTextAlpha(screen *ebiten.Image, str string, x, top, scale float64, clr color.NRGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	s.drawText(screen, str, x, top, scale, withAlpha(clr, alpha))
}

// cardLabel 窗口宿主的卡片标题
// 内置位图字体只有 ASCII 字形，中文标题由终端宿主显示
func cardLabel(id ecs.EntityID) string {
	return fmt.Sprintf("CARD %d", id)
}

func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * utils.Clamp(alpha, 0, 1))
	return c
}
