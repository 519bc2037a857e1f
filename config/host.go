package config

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/vmath"
)

// Host is the in-memory stand-in for an animation host built from a scene file
type Host struct {
	Scene      *host.MemoryScene
	Animator   *host.RecordingAnimator
	Controller *host.StaticController
	Handles    map[string]core.Handle
}

// BuildHost creates the transforms and controller the scene declares
func (s *Scene) BuildHost() (*Host, error) {
	h := &Host{
		Scene:    host.NewMemoryScene(),
		Animator: host.NewRecordingAnimator(),
		Controller: &host.StaticController{
			ControllerID: s.Controller.ID,
			ClipNames:    append([]string(nil), s.Controller.Clips...),
			Human:        s.Controller.Humanoid,
		},
		Handles: make(map[string]core.Handle, len(s.Transforms)),
	}

	for _, tr := range s.Transforms {
		parent := core.NoHandle
		if tr.Parent != "" {
			parent = h.Handles[tr.Parent]
		}
		handle, err := h.Scene.Create(tr.Name, tr.pose(), parent)
		if err != nil {
			return nil, fmt.Errorf("building host: %w", err)
		}
		h.Handles[tr.Name] = handle
	}
	return h, nil
}

func (tr TransformConfig) pose() vmath.Pose {
	p := vmath.IdentityPose()
	if len(tr.Position) == 3 {
		p.Position = mgl64.Vec3{tr.Position[0], tr.Position[1], tr.Position[2]}
	}
	if len(tr.Rotation) == 3 {
		p.Rotation = vmath.EulerDegrees(tr.Rotation[0], tr.Rotation[1], tr.Rotation[2])
	}
	return p
}

// Author replays the scene's rig section through the authoring API of a refreshed rig
func (s *Scene) Author(rig *engine.Rig, h *Host) error {
	globals, err := byLimb(s.Rig.Global.Targets)
	if err != nil {
		return fmt.Errorf("authoring global: %w", err)
	}
	for _, limb := range core.Limbs {
		if target, ok := globals[limb]; ok {
			if err := author(rig, h, engine.GlobalRef(limb), target); err != nil {
				return err
			}
		}
	}
	rig.SetGlobalEnabled(s.Rig.Global.Enabled)

	for _, sc := range s.Rig.Schedules {
		sched, err := rig.ScheduleByClip(sc.Clip)
		if err != nil {
			return fmt.Errorf("authoring: %w", err)
		}
		tracks, err := byLimb(sc.Tracks)
		if err != nil {
			return fmt.Errorf("authoring %s: %w", sc.Clip, err)
		}

		for _, limb := range core.Limbs {
			track, ok := tracks[limb]
			if !ok {
				continue
			}
			if err := authorTrack(rig, h, sched.Index, limb, track); err != nil {
				return fmt.Errorf("authoring %s %s: %w", sc.Clip, limb, err)
			}
		}
	}
	return nil
}

func authorTrack(rig *engine.Rig, h *Host, schedule int, limb core.Limb, track TrackConfig) error {
	if err := rig.SetDynamic(schedule, limb, track.Dynamic); err != nil {
		return err
	}
	if track.Default != nil {
		if err := author(rig, h, engine.DefaultRef(schedule, limb), *track.Default); err != nil {
			return err
		}
	}
	for _, target := range track.Timed {
		ref, err := rig.AddTimedTarget(schedule, limb)
		if err != nil {
			return err
		}
		if err := author(rig, h, ref, target); err != nil {
			return err
		}
		if err := rig.SetTime(ref, target.Time); err != nil {
			return err
		}
	}
	return nil
}

func author(rig *engine.Rig, h *Host, ref engine.TargetRef, target TargetConfig) error {
	if target.Attach != "" {
		if err := rig.SetAttachment(ref, h.Handles[target.Attach]); err != nil {
			return err
		}
	}
	if err := rig.SetUseLocation(ref, target.Location); err != nil {
		return err
	}
	if err := rig.SetUseRotation(ref, target.Rotation); err != nil {
		return err
	}
	if target.Speed != nil {
		return rig.SetSpeed(ref, *target.Speed)
	}
	return nil
}
