package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/event"
	"github.com/lixenwraith/ikrig/host"
)

type simulateOptions struct {
	loops float64
	fps   int
	only  []string
	stats bool
}

func simulateCmd() *cobra.Command {
	var opts simulateOptions
	cmd := &cobra.Command{
		Use:   "simulate <scene.yaml>",
		Short: "Play the scene headless at a fixed frame rate and print rig events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(args[0])
			if err != nil {
				return err
			}
			return runSimulation(os.Stdout, s, opts)
		},
	}
	cmd.Flags().Float64Var(&opts.loops, "loops", 0, "Clip loops to play (default from scene)")
	cmd.Flags().IntVar(&opts.fps, "fps", 0, "Simulation frame rate (default from scene)")
	cmd.Flags().StringSliceVar(&opts.only, "only", nil, "Only print these event types, e.g. target_activated,loop_wrapped")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print rig counters after the run")
	return cmd
}

func runSimulation(w io.Writer, s *session, opts simulateOptions) error {
	if issue := s.rig.Issue(); issue != nil {
		return fmt.Errorf("rig not runnable: %w", issue)
	}

	pb := s.scene.Playback
	if opts.loops > 0 {
		pb.Loops = opts.loops
	}
	if opts.fps > 0 {
		pb.FPS = opts.fps
	}

	printer, err := newEventPrinter(w, opts.only)
	if err != nil {
		return err
	}
	s.rig.RegisterEventHandler(printer)

	duration := time.Duration(pb.Duration * float64(time.Second))
	step := time.Second / time.Duration(pb.FPS)
	frames := int(math.Round(pb.Loops * pb.Duration * float64(pb.FPS)))
	player := host.NewClipPlayer(pb.Clip, duration)

	fmt.Fprintf(w, "Playing %s: %.2fs x %.2f loops at %d fps (%d frames)\n", pb.Clip, pb.Duration, pb.Loops, pb.FPS, frames)
	for i := 0; i <= frames; i++ {
		dt := time.Duration(0)
		if i > 0 {
			dt = step
		}
		t := player.Step(dt)
		printer.time = t - math.Floor(t)

		s.host.Animator.Reset()
		s.rig.Update(s.frame(player.Clip, t, dt.Seconds()))
	}

	fmt.Fprintln(w, "Final IK goals:")
	for _, limb := range core.Limbs {
		g := s.host.Animator.Goal(limb)
		if g.PositionWeight == 0 && g.RotationWeight == 0 {
			fmt.Fprintf(w, "  %-11s -\n", limb)
			continue
		}
		p := g.Position
		fmt.Fprintf(w, "  %-11s pos=(%.3f, %.3f, %.3f) w=%.0f rot w=%.0f\n", limb, p.X(), p.Y(), p.Z(), g.PositionWeight, g.RotationWeight)
	}

	if opts.stats {
		fmt.Fprintln(w, "Stats:")
		for _, line := range s.rig.Stats.Lines() {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}

// eventPrinter writes one line per routed rig event
type eventPrinter struct {
	w     io.Writer
	types []event.EventType
	time  float64
}

func newEventPrinter(w io.Writer, only []string) (*eventPrinter, error) {
	p := &eventPrinter{w: w, types: event.Types()}
	if len(only) == 0 {
		return p, nil
	}

	p.types = p.types[:0]
	for _, name := range only {
		t, err := event.ParseType(name)
		if err != nil {
			return nil, fmt.Errorf("--only: %w", err)
		}
		p.types = append(p.types, t)
	}
	return p, nil
}

func (p *eventPrinter) EventTypes() []event.EventType {
	return p.types
}

func (p *eventPrinter) HandleEvent(ev event.Event) {
	fmt.Fprintf(p.w, "frame %4d  t=%.3f  %-17s %s\n", ev.Frame, p.time, ev.Type, describe(ev))
}

func describe(ev event.Event) string {
	switch pl := ev.Payload.(type) {
	case *event.TargetPayload:
		return fmt.Sprintf("%s/%s timed #%d @%.2f", pl.Clip, pl.Limb, pl.Index, pl.Time)
	case *event.LoopPayload:
		return fmt.Sprintf("%.3f -> %.3f", pl.Previous, pl.Current)
	case *event.StalePayload:
		return fmt.Sprintf("bound %s, host reports %s", pl.Bound, pl.Current)
	case *event.RebuildPayload:
		return fmt.Sprintf("%s: %d clips, %d preserved", pl.ControllerID, pl.ClipCount, pl.Preserved)
	case *event.AuthoringPayload:
		if pl.Schedule == event.GlobalSchedule {
			return "global"
		}
		return fmt.Sprintf("schedule %d %s", pl.Schedule, pl.Limb)
	default:
		return ""
	}
}
