// Package audio 合成命中和未命中时播放的提示音
//
// 项目不附带任何音频文件，提示音全部由振荡器实时生成，并带有线性的
// 起音和释音。终端宿主直接把流交给 beep speaker，窗口宿主先编码为
// 16 位 PCM 再交给 ebiten 的音频上下文。
package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate 所有提示音的采样率，与 ebiten 音频上下文一致
const SampleRate = beep.SampleRate(48000)

// 提示音时长
const (
	chimeNoteDuration = 90 * time.Millisecond
	chimeTailDuration = 160 * time.Millisecond
	chimeAttack       = 4 * time.Millisecond
	chimeRelease      = 70 * time.Millisecond

	buzzDuration = 180 * time.Millisecond
	buzzAttack   = 6 * time.Millisecond
	buzzRelease  = 90 * time.Millisecond
)

// waveform 振荡器波形
type waveform int

const (
	waveSine waveform = iota
	waveSquare
	waveSaw
)

// sample 返回相位 phase ∈ [0, 1) 处的波形值
func (w waveform) sample(phase float64) float64 {
	switch w {
	case waveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case waveSaw:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// tone 固定时长的单音，左右声道相同
// 起音段音量从 0 线性升到 1，释音段线性降回 0
type tone struct {
	wave  waveform
	step  float64 // 每个采样的相位增量
	phase float64

	pos          int
	total        int
	attack       int
	releaseStart int
	release      int
}

func newTone(freq float64, wave waveform, duration, attack, release time.Duration) *tone {
	t := &tone{
		wave:    wave,
		step:    freq / float64(SampleRate),
		total:   SampleRate.N(duration),
		attack:  SampleRate.N(attack),
		release: SampleRate.N(release),
	}
	t.releaseStart = max(t.total-t.release, t.attack)
	return t
}

// gain 第 pos 个采样的包络音量
func (t *tone) gain() float64 {
	g := 1.0
	if t.attack > 0 && t.pos < t.attack {
		g = float64(t.pos) / float64(t.attack)
	}
	if t.release > 0 && t.pos >= t.releaseStart {
		g = max(float64(t.total-t.pos)/float64(t.release), 0)
	}
	return g
}

// Stream 实现 beep.Streamer
func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		v := t.wave.sample(t.phase) * t.gain()
		samples[i][0], samples[i][1] = v, v

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

// Err 实现 beep.Streamer
func (t *tone) Err() error { return nil }

// withVolume 按线性音量缩放
// math.Log2(0) 为 -Inf，所以音量 0 直接静音
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// SuccessChime 清除元素或命中卡片时的上行双音（E6 → B6）
func SuccessChime(volume float64) beep.Streamer {
	first := newTone(1318.51, waveSine, chimeNoteDuration, chimeAttack, chimeRelease)
	tail := newTone(1975.53, waveSine, chimeTailDuration, chimeAttack, chimeTailDuration-chimeAttack)
	return withVolume(beep.Seq(first, tail), volume)
}

// FailBuzz 精灵没有命中任何卡片时的低沉嗡声
func FailBuzz(volume float64) beep.Streamer {
	low := newTone(110, waveSaw, buzzDuration, buzzAttack, buzzRelease)
	sub := newTone(55, waveSquare, buzzDuration, buzzAttack, buzzRelease)

	mixed := beep.Mix(withVolume(low, 0.6), withVolume(sub, 0.25))
	return withVolume(beep.Take(SampleRate.N(buzzDuration), mixed), volume)
}

// EncodePCM16 把流读完并编码为交错的小端 16 位立体声 PCM
// ebiten 的 audio.NewPlayerFromBytes 需要这种格式
func EncodePCM16(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			for ch := 0; ch < 2; ch++ {
				out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(buf[i][ch])))
			}
		}
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func toInt16(v float64) int16 {
	return int16(max(min(v, 1), -1) * math.MaxInt16)
}
