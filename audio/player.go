package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/parameter"
)

// Player mixes cues onto the system speaker
type Player struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates an idle player; call Init before Play
func NewPlayer(cfg *AudioConfig) *Player {
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if !p.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.SpeakerBuffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play queues a cue; a no-op until Init succeeds
func (p *Player) Play(cue CueType, limb core.Limb) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := CueFor(cue, limb, p.cfg)
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences pending cues and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
