package app

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	cues "github.com/decker502/stealhome/internal/audio"
	"github.com/decker502/stealhome/pkg/game"
)

// AudioManager 音频管理器
// 职责：
//   - 在窗口模式下播放命中/未命中反馈音效（实现 CuePlayer）
//   - 从 SettingsManager 读取音效开关和音量
//
// 音效由 internal/audio 合成后编码为 PCM，启动时一次性生成并缓存。
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil（使用默认音量）
	pcm             map[game.Cue][]byte
	players         map[game.Cue]*audio.Player
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文（采样率必须为 cues.SampleRate）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager) (*AudioManager, error) {
	if ctx == nil {
		return nil, fmt.Errorf("audio context is nil")
	}
	if ctx.SampleRate() != int(cues.SampleRate) {
		return nil, fmt.Errorf("audio context sample rate %d, want %d", ctx.SampleRate(), int(cues.SampleRate))
	}

	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm: map[game.Cue][]byte{
			game.CueSuccess: cues.EncodePCM16(cues.SuccessChime(1)),
			game.CueFail:    cues.EncodePCM16(cues.FailBuzz(1)),
		},
		players: make(map[game.Cue]*audio.Player),
	}
	return am, nil
}

// PlayCue 播放反馈音效
// 音效被禁用时直接返回 nil
func (am *AudioManager) PlayCue(cue game.Cue) error {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return nil
	}

	player, err := am.getPlayer(cue)
	if err != nil {
		return err
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind %s cue: %v", cue, err)
	}
	player.Play()
	return nil
}

// getPlayer 获取或创建音效播放器
func (am *AudioManager) getPlayer(cue game.Cue) (*audio.Player, error) {
	if player, ok := am.players[cue]; ok {
		return player, nil
	}
	data, ok := am.pcm[cue]
	if !ok {
		return nil, fmt.Errorf("no sound for cue %s", cue)
	}
	player := am.context.NewPlayerFromBytes(data)
	am.players[cue] = player
	return player, nil
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return game.DefaultSettings().SoundVolume
}
