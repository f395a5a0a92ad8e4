//go:build ci

// CI 机器没有音频设备，提供同签名的静默实现
package sound

type SoundManager struct{}

func NewSoundManager() *SoundManager { return &SoundManager{} }

func (sm *SoundManager) Init() error { return nil }

func (sm *SoundManager) Play(string) {}

func (sm *SoundManager) Close() {}
