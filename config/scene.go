package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/parameter"
)

// Scene describes a simulated host and the rig authoring to replay onto it
type Scene struct {
	Version    int               `yaml:"version"`
	Controller ControllerConfig  `yaml:"controller"`
	Transforms []TransformConfig `yaml:"transforms"`
	Rig        RigConfig         `yaml:"rig"`
	Playback   PlaybackConfig    `yaml:"playback"`
}

type ControllerConfig struct {
	ID       string   `yaml:"id"`
	Humanoid bool     `yaml:"humanoid"`
	Clips    []string `yaml:"clips"`
}

// TransformConfig is one scene node; rotation is XYZ Euler degrees
type TransformConfig struct {
	Name     string    `yaml:"name"`
	Parent   string    `yaml:"parent"`
	Position []float64 `yaml:"position"`
	Rotation []float64 `yaml:"rotation"`
}

type RigConfig struct {
	Global    GlobalConfig     `yaml:"global"`
	Schedules []ScheduleConfig `yaml:"schedules"`
}

type GlobalConfig struct {
	Enabled bool                    `yaml:"enabled"`
	Targets map[string]TargetConfig `yaml:"targets"`
}

type ScheduleConfig struct {
	Clip   string                 `yaml:"clip"`
	Tracks map[string]TrackConfig `yaml:"tracks"`
}

type TrackConfig struct {
	Dynamic bool           `yaml:"dynamic"`
	Default *TargetConfig  `yaml:"default"`
	Timed   []TargetConfig `yaml:"timed"`
}

// TargetConfig authors one descriptor; Time only applies to timed entries, a nil Speed keeps the default
type TargetConfig struct {
	Attach   string   `yaml:"attach"`
	Location bool     `yaml:"location"`
	Rotation bool     `yaml:"rotation"`
	Time     float64  `yaml:"time"`
	Speed    *float64 `yaml:"speed"`
}

// PlaybackConfig drives headless simulation and the sandbox
type PlaybackConfig struct {
	Clip     string  `yaml:"clip"`
	Duration float64 `yaml:"duration"` // seconds per loop
	FPS      int     `yaml:"fps"`
	Loops    float64 `yaml:"loops"`
}

// LoadScene reads, validates and fills defaults of a scene file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	if err := validateScene(&scene); err != nil {
		return nil, fmt.Errorf("loading scene: %w", err)
	}

	scene.Playback.applyDefaults(scene.Controller.Clips)
	return &scene, nil
}

func (p *PlaybackConfig) applyDefaults(clips []string) {
	if p.Clip == "" && len(clips) > 0 {
		p.Clip = clips[0]
	}
	if p.Duration == 0 {
		p.Duration = parameter.DefaultClipDuration
	}
	if p.FPS == 0 {
		p.FPS = parameter.DefaultSimulationFPS
	}
	if p.Loops == 0 {
		p.Loops = 1
	}
}

func validateScene(scene *Scene) error {
	if scene.Version != 1 {
		return fmt.Errorf("unsupported version: %d", scene.Version)
	}
	if strings.TrimSpace(scene.Controller.ID) == "" {
		return fmt.Errorf("controller id is required")
	}

	clips := make(map[string]struct{})
	for i, clip := range scene.Controller.Clips {
		if strings.TrimSpace(clip) == "" {
			return fmt.Errorf("clip %d name is required", i)
		}
		if _, exists := clips[clip]; exists {
			return fmt.Errorf("duplicate clip: %s", clip)
		}
		clips[clip] = struct{}{}
	}

	nodes := make(map[string]struct{})
	for i, tr := range scene.Transforms {
		if strings.TrimSpace(tr.Name) == "" {
			return fmt.Errorf("transform %d name is required", i)
		}
		if _, exists := nodes[tr.Name]; exists {
			return fmt.Errorf("duplicate transform: %s", tr.Name)
		}
		if tr.Parent != "" {
			if _, ok := nodes[tr.Parent]; !ok {
				return fmt.Errorf("transform %s: parent %q must be declared before it", tr.Name, tr.Parent)
			}
		}
		if len(tr.Position) != 0 && len(tr.Position) != 3 {
			return fmt.Errorf("transform %s: position needs 3 components", tr.Name)
		}
		if len(tr.Rotation) != 0 && len(tr.Rotation) != 3 {
			return fmt.Errorf("transform %s: rotation needs 3 components", tr.Name)
		}
		nodes[tr.Name] = struct{}{}
	}

	globals, err := byLimb(scene.Rig.Global.Targets)
	if err != nil {
		return fmt.Errorf("global: %w", err)
	}
	for limb, target := range globals {
		if err := validateTarget("global "+limb.String(), target, nodes); err != nil {
			return err
		}
	}

	seen := make(map[string]struct{})
	for i, sched := range scene.Rig.Schedules {
		if _, ok := clips[sched.Clip]; !ok {
			return fmt.Errorf("schedule %d: unknown clip %q", i, sched.Clip)
		}
		if _, exists := seen[sched.Clip]; exists {
			return fmt.Errorf("duplicate schedule for clip: %s", sched.Clip)
		}
		seen[sched.Clip] = struct{}{}

		tracks, err := byLimb(sched.Tracks)
		if err != nil {
			return fmt.Errorf("schedule %s: %w", sched.Clip, err)
		}
		for limb, track := range tracks {
			where := sched.Clip + " " + limb.String()
			if track.Default != nil {
				if err := validateTarget(where+" default", *track.Default, nodes); err != nil {
					return err
				}
			}
			for j, target := range track.Timed {
				if err := validateTarget(fmt.Sprintf("%s timed %d", where, j), target, nodes); err != nil {
					return err
				}
			}
		}
	}

	p := scene.Playback
	if p.Clip != "" {
		if _, ok := clips[p.Clip]; !ok {
			return fmt.Errorf("playback: unknown clip %q", p.Clip)
		}
	}
	if p.Duration < 0 || p.FPS < 0 || p.Loops < 0 {
		return fmt.Errorf("playback: duration, fps and loops must not be negative")
	}

	return nil
}

// byLimb rekeys a limb-name map, rejecting unknown names and two spellings of one limb
func byLimb[T any](m map[string]T) (map[core.Limb]T, error) {
	out := make(map[core.Limb]T, len(m))
	for key, v := range m {
		limb, err := core.ParseLimb(key)
		if err != nil {
			return nil, err
		}
		if _, exists := out[limb]; exists {
			return nil, fmt.Errorf("limb %s listed twice", limb)
		}
		out[limb] = v
	}
	return out, nil
}

func validateTarget(where string, target TargetConfig, nodes map[string]struct{}) error {
	if target.Attach != "" {
		if _, ok := nodes[target.Attach]; !ok {
			return fmt.Errorf("%s: unknown transform %q", where, target.Attach)
		}
	}
	return nil
}
