package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"
)

// 16 位立体声：每帧 4 字节
const bytesPerFrame = 4

func TestSuccessChimeLength(t *testing.T) {
	pcm := EncodePCM16(SuccessChime(1))

	want := SampleRate.N(chimeNoteDuration+chimeTailDuration) * bytesPerFrame
	if len(pcm) != want {
		t.Errorf("chime PCM length: got %d bytes, want %d", len(pcm), want)
	}
}

func TestFailBuzzLength(t *testing.T) {
	pcm := EncodePCM16(FailBuzz(1))

	want := SampleRate.N(buzzDuration) * bytesPerFrame
	if len(pcm) != want {
		t.Errorf("buzz PCM length: got %d bytes, want %d", len(pcm), want)
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	pcm := EncodePCM16(SuccessChime(0))
	if len(pcm) == 0 {
		t.Fatal("silent cue should still have a duration")
	}
	for i := 0; i < len(pcm); i += 2 {
		if v := int16(binary.LittleEndian.Uint16(pcm[i:])); v != 0 {
			t.Fatalf("sample %d = %d, want 0", i/2, v)
		}
	}
}

func TestWaveformSample(t *testing.T) {
	tests := []struct {
		name  string
		wave  waveform
		phase float64
		want  float64
	}{
		{"sine quarter", waveSine, 0.25, 1},
		{"square first half", waveSquare, 0.1, 1},
		{"square second half", waveSquare, 0.6, -1},
		{"saw start", waveSaw, 0, -1},
		{"saw middle", waveSaw, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wave.sample(tt.phase); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("sample(%v): got %v, want %v", tt.phase, got, tt.want)
			}
		})
	}
}

func TestToneStartsAndEndsQuiet(t *testing.T) {
	d := 50 * time.Millisecond
	pcm := EncodePCM16(newTone(440, waveSquare, d, 10*time.Millisecond, 10*time.Millisecond))

	first := int16(binary.LittleEndian.Uint16(pcm[0:]))
	if first != 0 {
		t.Errorf("first sample: got %d, want 0 (attack starts silent)", first)
	}

	// 中段为满幅方波
	mid := len(pcm) / 2
	mid -= mid % bytesPerFrame
	if v := int16(binary.LittleEndian.Uint16(pcm[mid:])); v != 32767 && v != -32767 {
		t.Errorf("sustain sample: got %d, want full scale", v)
	}

	last := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-bytesPerFrame:]))
	if last > 3500 || last < -3500 {
		t.Errorf("last sample: got %d, want near silence", last)
	}
}
