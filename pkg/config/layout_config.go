package config

import (
	"math"
	"strconv"

	"github.com/decker502/stealhome/pkg/utils"
)

// 布局配置常量
// 本文件定义游戏表面上各个元素的布局参数。
// 所有坐标都是视口坐标（相对于游戏表面左上角），与点击事件坐标一致。

// Viewport Configuration (视口配置)
const (
	// DefaultViewportWidth 尚未测量窗口时使用的默认宽度
	DefaultViewportWidth = 1024.0

	// DefaultViewportHeight 尚未测量窗口时使用的默认高度
	DefaultViewportHeight = 768.0

	// MobileBreakpoint 视口宽度小于此值时使用移动端布局和更少的漂浮元素
	MobileBreakpoint = 768.0
)

// Card Grid Configuration (卡片网格配置)
const (
	// CardGridTopRatio 卡片区域顶部位于视口高度的 2/3 处
	CardGridTopRatio = 2.0 / 3.0

	// CardGridPadding 卡片区域左右内边距
	CardGridPadding = 16.0

	// CardGridMaxWidth 卡片区域最大宽度（超出时居中）
	CardGridMaxWidth = 1280.0

	// CardGridColumnsDesktop 桌面端列数
	CardGridColumnsDesktop = 4

	// CardGridGapDesktop 桌面端卡片间距
	CardGridGapDesktop = 16.0

	// CardGridGapMobile 移动端卡片间距（单列）
	CardGridGapMobile = 12.0

	// CardImageAspect 卡片图片区域高宽比（16:9）
	CardImageAspect = 9.0 / 16.0

	// CardContentHeight 卡片文字区域高度（标题 + 两行描述 + 内边距）
	CardContentHeight = 92.0
)

// Sprite / Counter Configuration (精灵与计数器配置)
const (
	// SpriteSizeDesktop 精灵直径（桌面端）
	SpriteSizeDesktop = 128.0

	// SpriteSizeMobile 精灵直径（移动端）
	SpriteSizeMobile = 96.0

	// CounterCenterYRatio 计数器中心位于视口高度的 40% 处
	CounterCenterYRatio = 0.4

	// CounterHeight 计数器卡片高度
	CounterHeight = 176.0

	// TitleTop 标题顶部位置
	TitleTop = 40.0
)

// IsMobileWidth 判断视口宽度是否属于移动端
func IsMobileWidth(width float64) bool {
	return width < MobileBreakpoint
}

// CardLayout 计算第 slot 个可见卡片在视口中的矩形
//
// 只有可见卡片参与排布，隐藏的卡片不占位置，
// 因此同一张卡片的位置会随其他卡片的隐藏而变化。
//
// 参数：
//   - viewWidth/viewHeight: 视口尺寸
//   - slot: 卡片在可见卡片中的序号（从 0 开始）
//
// 返回：
//   - utils.Rect: 卡片矩形
func CardLayout(viewWidth, viewHeight float64, slot int) utils.Rect {
	columns := CardGridColumnsDesktop
	gap := CardGridGapDesktop
	if IsMobileWidth(viewWidth) {
		columns = 1
		gap = CardGridGapMobile
	}

	contentWidth := math.Min(viewWidth-2*CardGridPadding, CardGridMaxWidth)
	if contentWidth < 0 {
		contentWidth = 0
	}
	left := (viewWidth - contentWidth) / 2

	cardWidth := (contentWidth - gap*float64(columns-1)) / float64(columns)
	if cardWidth < 0 {
		cardWidth = 0
	}
	cardHeight := cardWidth*CardImageAspect + CardContentHeight

	col := slot % columns
	row := slot / columns

	return utils.Rect{
		Left:   left + float64(col)*(cardWidth+gap),
		Top:    viewHeight*CardGridTopRatio + float64(row)*(cardHeight+gap),
		Width:  cardWidth,
		Height: cardHeight,
	}
}

// SpriteSize 返回当前视口下的精灵直径
func SpriteSize(viewWidth float64) float64 {
	if IsMobileWidth(viewWidth) {
		return SpriteSizeMobile
	}
	return SpriteSizeDesktop
}

// CounterWidth 根据分数的位数返回计数器卡片宽度
// 桌面端：1 位 128，2 位 160，3 位 192，更多 224（移动端各减 32）
func CounterWidth(score int, viewWidth float64) float64 {
	digits := len(strconv.Itoa(score))
	if digits > 4 {
		digits = 4
	}
	width := 64.0 + float64(digits)*32.0
	if !IsMobileWidth(viewWidth) {
		width += 32.0
	}
	return width
}

// CounterRect 返回计数器卡片的矩形（水平居中）
func CounterRect(score int, viewWidth, viewHeight float64) utils.Rect {
	width := CounterWidth(score, viewWidth)
	centerY := viewHeight * CounterCenterYRatio
	return utils.Rect{
		Left:   (viewWidth - width) / 2,
		Top:    centerY - CounterHeight/2,
		Width:  width,
		Height: CounterHeight,
	}
}
