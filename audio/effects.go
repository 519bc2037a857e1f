package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a fixed-length wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates an oscillator lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope shapes s; the sustain span is whatever attack and release leave of duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateActivateCue generates a short square blip pitched per limb, a fourth lower for each limb
func CreateActivateCue(limb core.Limb, cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	freq := parameter.ActivateCueBase * math.Pow(0.75, float64(limb))
	osc := NewOscillator(freq, parameter.ActivateCueDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, parameter.ActivateCueDuration, parameter.ActivateCueAttack, parameter.ActivateCueRelease, rate)

	return newVolume(shaped, cfg.CueVolumes[CueActivate]*cfg.MasterVolume)
}

// CreateLoopCue generates a noise tick marking the clip wrap
func CreateLoopCue(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.LoopCueDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, parameter.LoopCueDuration, parameter.LoopCueAttack, parameter.LoopCueRelease, rate)

	return newVolume(shaped, cfg.CueVolumes[CueLoop]*cfg.MasterVolume)
}

// CreateSettleCue generates a two-partial chime for a finished blend
func CreateSettleCue(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fund := NewOscillator(parameter.SettleCueFundamental, parameter.SettleCueDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, parameter.SettleCueDuration, parameter.SettleCueAttack, parameter.SettleCueFundamentalRel, rate)

	over := NewOscillator(parameter.SettleCueOvertone, parameter.SettleCueDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, parameter.SettleCueDuration, parameter.SettleCueAttack, parameter.SettleCueOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.CueVolumes[CueSettle]*cfg.MasterVolume)
}

// CueFor returns the streamer for a cue, nil for an unknown type
func CueFor(cue CueType, limb core.Limb, cfg *AudioConfig) beep.Streamer {
	switch cue {
	case CueActivate:
		return CreateActivateCue(limb, cfg)
	case CueLoop:
		return CreateLoopCue(cfg)
	case CueSettle:
		return CreateSettleCue(cfg)
	default:
		return nil
	}
}
