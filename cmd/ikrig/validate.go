package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
)

func validateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <scene.yaml>",
		Short: "Classify every authored target and report readiness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(args[0])
			if err != nil {
				return err
			}
			warnings := writeReport(os.Stdout, s.rig)
			if issue := s.rig.Issue(); issue != nil {
				return fmt.Errorf("rig not runnable: %w", issue)
			}
			if strict && warnings > 0 {
				return fmt.Errorf("validation found %d incomplete targets", warnings)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any target is incomplete")
	return cmd
}

// writeReport prints binding state, schedule and track statuses and returns the incomplete target count
func writeReport(w io.Writer, rig *engine.Rig) int {
	ctrl := rig.Controller()
	switch issue := rig.Issue(); {
	case errors.Is(issue, engine.ErrMissingBinding):
		fmt.Fprintln(w, "No animation controller bound.")
		return 0
	case errors.Is(issue, engine.ErrNotHumanoid):
		fmt.Fprintf(w, "Controller %s: skeleton is not humanoid, IK goals unavailable.\n", ctrl.ID())
		return 0
	}

	fmt.Fprintf(w, "Controller: %s\n", ctrl.ID())
	fmt.Fprintf(w, "Detected animations: %d\n", len(rig.Schedules))

	var warnings []string
	state := "disabled"
	if rig.Globals.Enabled {
		state = "enabled"
	}
	fmt.Fprintf(w, "Global overrides: %s\n", state)
	for limb, target := range rig.Globals.Targets {
		if target.Status == core.StatusAbsent {
			continue
		}
		fmt.Fprintf(w, "  %-11s %s\n", core.Limb(limb), target.Status)
		if target.Status == core.StatusIncomplete {
			warnings = append(warnings, fmt.Sprintf("global %s: %s", core.Limb(limb), incompleteReason(target)))
		}
	}

	for _, sched := range rig.Schedules {
		fmt.Fprintf(w, "Schedule %d %s: %s\n", sched.Index, sched.Clip, sched.Status)
		for _, track := range sched.Tracks {
			if track.Status == core.StatusAbsent {
				continue
			}
			mode := "static"
			if track.Dynamic {
				mode = "dynamic"
			}
			fmt.Fprintf(w, "  %-11s %-10s %-7s default=%s timed=%d (%d eligible)\n",
				track.Limb, track.Status, mode, track.Default.Status, len(track.Timed), len(track.Eligible))

			where := fmt.Sprintf("%s %s", sched.Clip, track.Limb)
			if track.Default.Status == core.StatusIncomplete {
				warnings = append(warnings, fmt.Sprintf("%s default: %s", where, incompleteReason(track.Default)))
			}
			for i, target := range track.Timed {
				if target.Status == core.StatusIncomplete {
					warnings = append(warnings, fmt.Sprintf("%s timed %d: %s", where, i, incompleteReason(target)))
				}
			}
		}
	}

	mode := "idle"
	if rig.IndividualLive() {
		mode = "live"
	}
	fmt.Fprintf(w, "Individual mode: %s\n", mode)

	if len(warnings) > 0 {
		fmt.Fprintf(w, "Warnings (%d):\n", len(warnings))
		for _, warning := range warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	return len(warnings)
}

func incompleteReason(target *component.Target) string {
	if target.Config.HasFlags() {
		return "location/rotation enabled without a live attachment"
	}
	return "attachment without location or rotation"
}
