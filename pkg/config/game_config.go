package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/stealhome/pkg/embedded"
)

// GameConfigPath 嵌入数据中的游戏配置路径
const GameConfigPath = "data/game.yaml"

// GameConfig 游戏核心配置
//
// 包含目标卡片列表、精灵飞行参数和漂浮元素参数。
// 所有字段都有默认值（见 DefaultGameConfig），YAML 文件只需覆盖需要修改的字段。
//
// 配置文件位置: data/game.yaml
type GameConfig struct {
	// Viewport 视口默认值与移动端判定
	Viewport ViewportConfig `yaml:"viewport"`

	// Cards 目标卡片（ID 必须为 1..N 且唯一）
	Cards []CardConfig `yaml:"cards"`

	// Flight 精灵飞行参数
	Flight FlightConfig `yaml:"flight"`

	// Floating 漂浮元素参数
	Floating FloatingConfig `yaml:"floating"`
}

// ViewportConfig 视口配置
// 移动端断点是布局常量（见 layout_config.go），不可配置
type ViewportConfig struct {
	// DefaultWidth/DefaultHeight 尚未测量到窗口尺寸时使用的安全默认值
	DefaultWidth  float64 `yaml:"defaultWidth"`
	DefaultHeight float64 `yaml:"defaultHeight"`
}

// CardConfig 目标卡片配置
type CardConfig struct {
	ID          uint64 `yaml:"id"`
	ImageRef    string `yaml:"imageRef"`
	Description string `yaml:"description"`
}

// Title 返回卡片标题（"卡片 N"）
func (c CardConfig) Title() string {
	return fmt.Sprintf("卡片 %d", c.ID)
}

// FlightConfig 精灵飞行配置
type FlightConfig struct {
	// Duration 每个阶段的动画时长（秒）
	Duration float64 `yaml:"duration"`

	// ReducedMotionDuration 减少动态效果时每个阶段的动画时长（秒）
	ReducedMotionDuration float64 `yaml:"reducedMotionDuration"`

	// SpawnOffset 边缘出生点位于视口外的距离
	SpawnOffset float64 `yaml:"spawnOffset"`

	// HitTolerance 命中检测时卡片矩形四边扩展的容差
	HitTolerance float64 `yaml:"hitTolerance"`

	// LaunchSprite 第一阶段精灵图片引用
	LaunchSprite string `yaml:"launchSprite"`

	// ReturnSprite 第二阶段精灵图片引用
	ReturnSprite string `yaml:"returnSprite"`
}

// FloatingConfig 漂浮元素配置
type FloatingConfig struct {
	// MobileCount 移动设备上的元素数量范围（闭区间）
	MobileCount IntRange `yaml:"mobileCount"`
	// DesktopCount 桌面设备上的元素数量范围（闭区间）
	DesktopCount IntRange `yaml:"desktopCount"`

	// CoinChance 生成金币的概率（否则生成小球）
	CoinChance float64 `yaml:"coinChance"`
	// CoinSize 金币尺寸范围（整数，闭区间）
	CoinSize IntRange `yaml:"coinSize"`
	// OrbSize 小球尺寸范围（整数，闭区间）
	OrbSize IntRange `yaml:"orbSize"`

	// Opacity 初始透明度范围 [Min, Max)
	Opacity Range `yaml:"opacity"`
	// Speed 基础速度范围 [Min, Max)
	Speed Range `yaml:"speed"`
	// ReducedMotionSpeed 减少动态效果时的固定速度
	ReducedMotionSpeed float64 `yaml:"reducedMotionSpeed"`
	// RotationSpeedSpan 旋转速度跨度，实际值为 (r-0.5)*span
	RotationSpeedSpan float64 `yaml:"rotationSpeedSpan"`

	// Step 每帧位移步长
	Step float64 `yaml:"step"`
	// TurnChance 每帧随机改变方向的概率
	TurnChance float64 `yaml:"turnChance"`
	// TurnSpan 随机改变方向的跨度，实际偏移为 (r-0.5)*span
	TurnSpan float64 `yaml:"turnSpan"`

	// HoverSpeedFactor 悬停时速度倍率
	HoverSpeedFactor float64 `yaml:"hoverSpeedFactor"`
	// HoverLeaveOpacityDrop 离开悬停时透明度减少量
	HoverLeaveOpacityDrop float64 `yaml:"hoverLeaveOpacityDrop"`

	// Colors 小球颜色标记
	Colors []string `yaml:"colors"`
}

// Range 浮点数范围
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Span 返回范围跨度
func (r Range) Span() float64 {
	return r.Max - r.Min
}

// IntRange 整数闭区间
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Size 返回闭区间内的整数个数
func (r IntRange) Size() int {
	return r.Max - r.Min + 1
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Viewport: ViewportConfig{
			DefaultWidth:  DefaultViewportWidth,
			DefaultHeight: DefaultViewportHeight,
		},
		Cards: []CardConfig{
			{ID: 1, ImageRef: "https://nocode.meituan.com/photo/search?keyword=cat&width=300&height=200", Description: "这是一只可爱的猫咪"},
			{ID: 2, ImageRef: "https://nocode.meituan.com/photo/search?keyword=dog&width=300&height=200", Description: "这是一只忠诚的狗狗"},
			{ID: 3, ImageRef: "https://nocode.meituan.com/photo/search?keyword=bird&width=300&height=200", Description: "这是一只自由的小鸟"},
			{ID: 4, ImageRef: "https://nocode.meituan.com/photo/search?keyword=fish&width=300&height=200", Description: "这是一条优雅的鱼儿"},
		},
		Flight: FlightConfig{
			Duration:              0.5,
			ReducedMotionDuration: 0.1,
			SpawnOffset:           100,
			HitTolerance:          5,
			LaunchSprite:          "sprite_launch",
			ReturnSprite:          "sprite_return",
		},
		Floating: FloatingConfig{
			MobileCount:           IntRange{Min: 5, Max: 7},
			DesktopCount:          IntRange{Min: 8, Max: 12},
			CoinChance:            0.5,
			CoinSize:              IntRange{Min: 15, Max: 24},
			OrbSize:               IntRange{Min: 20, Max: 29},
			Opacity:               Range{Min: 0.6, Max: 0.8},
			Speed:                 Range{Min: 0.5, Max: 1.5},
			ReducedMotionSpeed:    1.5,
			RotationSpeedSpan:     0.02,
			Step:                  0.5,
			TurnChance:            0.01,
			TurnSpan:              0.5,
			HoverSpeedFactor:      1.5,
			HoverLeaveOpacityDrop: 0.2,
			Colors:                []string{"red", "blue", "green", "yellow", "purple", "pink"},
		},
	}
}

// LoadGameConfig 加载游戏配置
//
// 从指定路径加载 YAML 配置，未出现的字段保留默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/game.yaml"）
//
// 返回:
//   - *GameConfig: 合并默认值后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config: %w", err)
	}
	return ParseGameConfig(data)
}

// ResolveGameConfig 按优先级确定游戏配置
//
// 优先级：
//  1. path 非空时从磁盘加载（失败返回错误，不静默回退）
//  2. 嵌入数据中存在 data/game.yaml 时解析它
//  3. 内置默认值
func ResolveGameConfig(path string) (*GameConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载游戏配置: %s", path)
		return LoadGameConfig(path)
	}

	if embedded.Exists(GameConfigPath) {
		data, err := embedded.ReadFile(GameConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded game config: %w", err)
		}
		log.Printf("[Config] 使用嵌入的游戏配置: %s", GameConfigPath)
		return ParseGameConfig(data)
	}

	log.Printf("[Config] 未找到游戏配置，使用内置默认值")
	return DefaultGameConfig(), nil
}

// ParseGameConfig 解析 YAML 数据并与默认值合并
func ParseGameConfig(data []byte) (*GameConfig, error) {
	cfg := DefaultGameConfig()

	// 序列（cards、colors）整体替换默认值，映射字段逐项覆盖
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *GameConfig) Validate() error {
	if c.Viewport.DefaultWidth <= 0 || c.Viewport.DefaultHeight <= 0 {
		return fmt.Errorf("viewport default size must be positive, got %.0fx%.0f",
			c.Viewport.DefaultWidth, c.Viewport.DefaultHeight)
	}

	if len(c.Cards) == 0 {
		return errors.New("at least one card is required")
	}
	seen := make(map[uint64]bool, len(c.Cards))
	for _, card := range c.Cards {
		if card.ID == 0 || card.ID > uint64(len(c.Cards)) {
			return fmt.Errorf("card id %d out of range 1..%d", card.ID, len(c.Cards))
		}
		if seen[card.ID] {
			return fmt.Errorf("duplicate card id %d", card.ID)
		}
		seen[card.ID] = true
	}

	if err := c.Flight.Validate(); err != nil {
		return fmt.Errorf("flight: %w", err)
	}
	if err := c.Floating.Validate(); err != nil {
		return fmt.Errorf("floating: %w", err)
	}
	return nil
}

// Validate 验证飞行配置
func (c FlightConfig) Validate() error {
	if c.Duration <= 0 || c.ReducedMotionDuration <= 0 {
		return fmt.Errorf("durations must be positive, got %.2f/%.2f", c.Duration, c.ReducedMotionDuration)
	}
	if c.HitTolerance < 0 {
		return fmt.Errorf("hit tolerance must not be negative, got %.1f", c.HitTolerance)
	}
	if c.SpawnOffset < 0 {
		return fmt.Errorf("spawn offset must not be negative, got %.1f", c.SpawnOffset)
	}
	return nil
}

// Validate 验证漂浮元素配置
func (c FloatingConfig) Validate() error {
	ranges := map[string]IntRange{
		"mobileCount":  c.MobileCount,
		"desktopCount": c.DesktopCount,
		"coinSize":     c.CoinSize,
		"orbSize":      c.OrbSize,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("%s range invalid: min(%d) > max(%d)", name, r.Min, r.Max)
		}
	}
	if c.CoinSize.Min <= 0 || c.OrbSize.Min <= 0 {
		return errors.New("element sizes must be positive")
	}
	if c.Opacity.Min < 0 || c.Opacity.Max > 1 || c.Opacity.Min > c.Opacity.Max {
		return fmt.Errorf("opacity range invalid: [%.2f, %.2f]", c.Opacity.Min, c.Opacity.Max)
	}
	if c.Speed.Min > c.Speed.Max {
		return fmt.Errorf("speed range invalid: min(%.2f) > max(%.2f)", c.Speed.Min, c.Speed.Max)
	}
	if c.TurnChance < 0 || c.TurnChance > 1 || c.CoinChance < 0 || c.CoinChance > 1 {
		return errors.New("probabilities must be within [0, 1]")
	}
	if c.HoverSpeedFactor <= 0 {
		return fmt.Errorf("hover speed factor must be positive, got %.2f", c.HoverSpeedFactor)
	}
	if len(c.Colors) == 0 {
		return errors.New("at least one color is required")
	}
	return nil
}
