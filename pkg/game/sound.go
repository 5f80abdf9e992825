package game

// 音效提示点
const (
	CueIntroReveal = "intro_reveal"
	CueIntroEyes   = "intro_eyes"
	CueFarewell    = "farewell"
	CueRejection   = "rejection"
)

// SoundSink 音效能力接口
//
// 在组合时选择实现；当前只有 NopSound。
type SoundSink interface {
	Play(cue string)
	Stop(cue string)
	StopAll()
}

// NopSound 静音实现
type NopSound struct{}

// Play 无操作
func (NopSound) Play(string) {}

// Stop 无操作
func (NopSound) Stop(string) {}

// StopAll 无操作
func (NopSound) StopAll() {}
