package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/stealhome/pkg/components"
	"github.com/decker502/stealhome/pkg/config"
	"github.com/decker502/stealhome/pkg/utils"
)

// 每个字符格对应的虚拟像素
const (
	unitsPerCol = 8.0
	unitsPerRow = 16.0
)

var (
	backgroundStyle = tcell.StyleDefault.Background(tcell.NewRGBColor(36, 46, 70)).Foreground(tcell.ColorWhite)
	titleStyle      = backgroundStyle.Bold(true)
	hintStyle       = backgroundStyle.Foreground(tcell.ColorSilver)
	coinStyle       = backgroundStyle.Foreground(tcell.ColorGold)
	counterStyle    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorRed).Bold(true)
	cardStyle       = tcell.StyleDefault.Background(tcell.NewRGBColor(245, 245, 245)).Foreground(tcell.NewRGBColor(31, 41, 55))
	cardTitleStyle  = cardStyle.Bold(true)
	missStyle       = backgroundStyle.Foreground(tcell.ColorSilver).Italic(true)
	launchStyle     = backgroundStyle.Foreground(tcell.ColorHotPink).Bold(true)
	returnStyle     = backgroundStyle.Foreground(tcell.ColorDodgerBlue).Bold(true)
)

// cellToPoint 返回字符格中心对应的虚拟像素坐标
func cellToPoint(col, row int) utils.Point {
	return utils.Point{
		X: (float64(col) + 0.5) * unitsPerCol,
		Y: (float64(row) + 0.5) * unitsPerRow,
	}
}

// pointToCell 返回虚拟像素所在的字符格
func pointToCell(p utils.Point) (col, row int) {
	return int(math.Floor(p.X / unitsPerCol)), int(math.Floor(p.Y / unitsPerRow))
}

// rectToCells 返回矩形覆盖的字符格范围 [left, right) × [top, bottom)
func rectToCells(r utils.Rect) (left, top, right, bottom int) {
	left, top = pointToCell(utils.Point{X: r.Left, Y: r.Top})
	right = int(math.Ceil(r.Right() / unitsPerCol))
	bottom = int(math.Ceil(r.Bottom() / unitsPerRow))
	return left, top, right, bottom
}

// drawText 从 (col, row) 开始绘制文本，返回结束列
// 宽字符（中文）占两格
func drawText(screen tcell.Screen, col, row int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(col, row, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
	return col
}

// drawCentered 以 center 列为中心绘制文本
func drawCentered(screen tcell.Screen, center, row int, s string, style tcell.Style) {
	drawText(screen, center-runewidth.StringWidth(s)/2, row, s, style)
}

func fillRect(screen tcell.Screen, left, top, right, bottom int, style tcell.Style) {
	for y := top; y < bottom; y++ {
		for x := left; x < right; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (h *terminalHost) draw() {
	h.screen.SetStyle(backgroundStyle)
	h.screen.Clear()

	cols, rows := h.screen.Size()
	vp := h.core.Tracker.Viewport()

	h.drawFloatingElements()
	h.drawTitle(cols)
	h.drawCounter(vp.Width, vp.Height)
	h.drawCards()
	h.drawSprite()
	h.drawHint(rows, vp.ReducedMotion, h.settings.GetSettings().SoundEnabled)

	h.screen.Show()
}

func (h *terminalHost) drawFloatingElements() {
	for _, e := range h.core.Floating.Elements() {
		col, row := pointToCell(utils.Point{X: e.X + e.Size/2, Y: e.Y + e.Size/2})

		style := coinStyle
		r := '●'
		if e.Kind == components.FloatingOrb {
			style = backgroundStyle.Foreground(tcell.GetColor(e.Color))
			r = '○'
		}
		if e.Hovered {
			style = style.Bold(true).Reverse(true)
		} else if e.Opacity < 0.7 {
			style = style.Dim(true)
		}
		h.screen.SetContent(col, row, r, nil, style)
	}
}

func (h *terminalHost) drawTitle(cols int) {
	row := int(math.Floor(config.TitleTop / unitsPerRow))
	drawCentered(h.screen, cols/2, row, "偷家小游戏", titleStyle)
	drawCentered(h.screen, cols/2, row+1, "点击任意位置开始", backgroundStyle)
}

func (h *terminalHost) drawCounter(width, height float64) {
	score := h.core.State.Score()
	left, top, right, bottom := rectToCells(config.CounterRect(score, width, height))

	style := counterStyle
	if h.flash > 0 {
		style = style.Reverse(true)
	}
	fillRect(h.screen, left, top, right, bottom, style)
	drawCentered(h.screen, (left+right)/2, (top+bottom)/2, strconv.Itoa(score), style)

	if h.missFlash > 0 {
		drawCentered(h.screen, (left+right)/2, bottom, "没打中", missStyle)
	}
}

func (h *terminalHost) drawCards() {
	for _, p := range h.core.Geometry.Layout(h.core.Tracker.Viewport()) {
		left, top, right, bottom := rectToCells(p.Rect)
		fillRect(h.screen, left, top, right, bottom, cardStyle)

		// 图片区域用占位符号填充
		imageBottom := top + int(p.Rect.Width*config.CardImageAspect/unitsPerRow)
		for y := top; y < imageBottom && y < bottom; y++ {
			for x := left + 1; x < right-1; x++ {
				h.screen.SetContent(x, y, '░', nil, cardStyle)
			}
		}

		row := imageBottom + 1
		drawText(h.screen, left+2, row, p.Card.Title, cardTitleStyle)

		innerWidth := right - left - 4
		// 中文字符占两格
		for i, line := range utils.TruncateLines(p.Card.Description, innerWidth/2, 2) {
			drawText(h.screen, left+2, row+2+i, line, cardStyle)
		}
	}
}

func (h *terminalHost) drawSprite() {
	frame, ok := h.core.Animation.Frame()
	if !ok || frame.Opacity <= 0 {
		return
	}

	style, r := launchStyle, '◆'
	if frame.Phase == components.FlightReturning {
		style, r = returnStyle, '◇'
	}
	if frame.Opacity < 0.5 {
		style = style.Dim(true)
	}
	col, row := pointToCell(frame.Position)
	h.screen.SetContent(col, row, r, nil, style)
}

func (h *terminalHost) drawHint(rows int, reduced, sound bool) {
	sound = sound && h.cues != nil
	hint := fmt.Sprintf("[鼠标] 点击  [M] 减少动态效果: %s  [S] 音效: %s  [Q] 退出", onOff(reduced), onOff(sound))
	drawText(h.screen, 1, rows-1, hint, hintStyle)
}

func onOff(v bool) string {
	if v {
		return "开"
	}
	return "关"
}
