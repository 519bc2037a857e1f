package main

import (
	"fmt"

	"github.com/lixenwraith/ikrig/config"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/manifest"
)

// session is a scene file loaded into a fresh rig on a simulated host
type session struct {
	scene *config.Scene
	host  *config.Host
	rig   *engine.Rig
}

// loadSession builds the host, installs systems, binds the controller and replays authoring
// A binding problem is not an error here; callers inspect rig.Issue
func loadSession(path string) (*session, error) {
	scene, err := config.LoadScene(path)
	if err != nil {
		return nil, err
	}
	h, err := scene.BuildHost()
	if err != nil {
		return nil, err
	}

	rig := engine.NewRig(h.Scene, h.Animator)
	if _, err := manifest.Install(rig); err != nil {
		return nil, fmt.Errorf("installing systems: %w", err)
	}

	s := &session{scene: scene, host: h, rig: rig}
	if err := rig.Refresh(h.Controller); err != nil {
		return s, nil
	}
	if err := scene.Author(rig, h); err != nil {
		return nil, err
	}
	rig.Flush()
	return s, nil
}

// frame samples the host state for one IK pass
func (s *session) frame(clip string, normalized, dt float64) engine.Frame {
	return engine.Frame{
		ControllerID:   s.host.Controller.ID(),
		Clip:           clip,
		NormalizedTime: normalized,
		DeltaTime:      dt,
	}
}
