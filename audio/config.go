package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/ikrig/parameter"
)

// AudioConfig controls sandbox feedback cues
type AudioConfig struct {
	Enabled      bool
	MasterVolume float64 // 0.0 to 1.0
	CueVolumes   map[CueType]float64
	SampleRate   int
}

// DefaultAudioConfig returns cues enabled at half volume
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		CueVolumes: map[CueType]float64{
			CueActivate: 0.6,
			CueLoop:     0.3,
			CueSettle:   0.5,
		},
		SampleRate: parameter.CueSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()

	if enabled := os.Getenv("IKRIG_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100
	if volume := os.Getenv("IKRIG_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Per cue volumes as JSON, e.g. {"loop":0.1}
	if cueVols := os.Getenv("IKRIG_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for cue := CueType(0); cue < cueTypeCount; cue++ {
				if v, ok := volumes[cue.String()]; ok {
					cfg.CueVolumes[cue] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("IKRIG_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
