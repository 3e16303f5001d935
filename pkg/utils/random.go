package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
// 核心中所有随机行为（实体属性、边缘出生点、方向扰动）都通过此接口获取，
// 测试时可以注入确定性的序列。
type RandomSource interface {
	// Float64 返回 [0, 1) 内的均匀随机数
	Float64() float64
}

// NewRandomSource 创建基于种子的随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomIntn 返回 [0, n) 内的均匀随机整数（floor(r*n)）
func RandomIntn(src RandomSource, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// RandomRange 返回 [min, min+span) 内的均匀随机数
func RandomRange(src RandomSource, min, span float64) float64 {
	return min + src.Float64()*span
}

// SequenceSource 按固定序列循环返回数值的随机数来源
// 用于测试和场景验证工具
type SequenceSource struct {
	values []float64
	index  int
}

// NewSequenceSource 创建按序返回 values 的随机数来源
// values 为空时始终返回 0
func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

// Float64 返回序列中的下一个值，序列耗尽后从头循环
func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.index%len(s.values)]
	s.index++
	return v
}

// Draws 返回已经取出的数值个数
func (s *SequenceSource) Draws() int {
	return s.index
}
