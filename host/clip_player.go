package host

import "time"

// ClipPlayer advances one looping clip the way a host animator state does
// NormalizedTime keeps growing past 1 across loops; the rig reduces it
type ClipPlayer struct {
	Clip     string
	Duration time.Duration

	elapsed time.Duration
}

// NewClipPlayer creates a player for clip with the given loop length
func NewClipPlayer(clip string, duration time.Duration) *ClipPlayer {
	return &ClipPlayer{Clip: clip, Duration: duration}
}

// Step advances playback by dt and returns the new normalized time
func (p *ClipPlayer) Step(dt time.Duration) float64 {
	if dt > 0 {
		p.elapsed += dt
	}
	return p.NormalizedTime()
}

// NormalizedTime is elapsed time in units of clip length
func (p *ClipPlayer) NormalizedTime() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.elapsed) / float64(p.Duration)
}

// Play switches to another clip from its start
func (p *ClipPlayer) Play(clip string, duration time.Duration) {
	p.Clip = clip
	p.Duration = duration
	p.elapsed = 0
}

// Seek jumps to a normalized time within the current loop count
func (p *ClipPlayer) Seek(normalized float64) {
	if normalized < 0 {
		normalized = 0
	}
	p.elapsed = time.Duration(normalized * float64(p.Duration))
}
