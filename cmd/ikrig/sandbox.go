package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/ikrig/audio"
	"github.com/lixenwraith/ikrig/component"
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/engine"
	"github.com/lixenwraith/ikrig/host"
	"github.com/lixenwraith/ikrig/parameter"
)

func sandboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sandbox <scene.yaml>",
		Short: "Interactive timeline view of a scene in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(args[0])
			if err != nil {
				return err
			}
			if issue := s.rig.Issue(); issue != nil {
				return fmt.Errorf("rig not runnable: %w", issue)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}

			defer func() {
				if r := recover(); r != nil {
					screen.Fini()
					fmt.Fprintf(os.Stderr, "\nikrig sandbox crashed: %v\n", r)
					fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
					os.Exit(1)
				}
			}()

			cfg := audio.LoadAudioConfig()
			player := audio.NewPlayer(cfg)
			if err := player.Init(); err != nil {
				log.Printf("sandbox: audio unavailable: %v", err)
			}
			defer player.Close()
			s.rig.RegisterEventHandler(audio.NewCueObserver(player))

			sb := newSandbox(screen, s, engine.SystemTime{})
			sb.run()
			screen.Fini()
			return nil
		},
	}
}

var (
	styleText     = tcell.StyleDefault
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleActive   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleWarn     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
)

type sandbox struct {
	screen   tcell.Screen
	sess     *session
	clock    *engine.FrameClock
	clip     *host.ClipPlayer
	selected core.Limb
	message  string
}

func newSandbox(screen tcell.Screen, s *session, src engine.TimeSource) *sandbox {
	pb := s.scene.Playback
	return &sandbox{
		screen: screen,
		sess:   s,
		clock:  engine.NewFrameClock(src),
		clip:   host.NewClipPlayer(pb.Clip, time.Duration(pb.Duration*float64(time.Second))),
	}
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- sb.screen.PollEvent()
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !sb.handleInput(ev) {
				return
			}

		case <-ticker.C:
			sb.step(sb.clock.Tick())
			sb.draw()
		}
	}
}

// step advances the clip and runs one IK pass; a zero dt while paused leaves the rig alone
func (sb *sandbox) step(dt time.Duration) {
	if sb.clock.Paused() {
		return
	}
	t := sb.clip.Step(dt)
	sb.sess.host.Animator.Reset()
	sb.sess.rig.Update(sb.sess.frame(sb.clip.Clip, t, dt.Seconds()))
}

func (sb *sandbox) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return sb.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		sb.screen.Sync()
	}
	return true
}

// handleKey applies one key press and reports whether the sandbox keeps running
func (sb *sandbox) handleKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyTab:
		sb.selected = (sb.selected + 1) % core.LimbCount
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch r {
	case 'q':
		return false
	case ' ':
		sb.togglePause()
	case '1', '2', '3', '4':
		sb.selected = core.Limb(r - '1')
	case 'n':
		sb.nextClip()
	case 'g':
		sb.edit(func(rig *engine.Rig) error {
			rig.SetGlobalEnabled(!rig.Globals.Enabled)
			return nil
		})
	case 'd':
		sb.edit(func(rig *engine.Rig) error {
			sched, err := rig.ScheduleByClip(sb.clip.Clip)
			if err != nil {
				return err
			}
			return rig.SetDynamic(sched.Index, sb.selected, !sched.Track(sb.selected).Dynamic)
		})
	case 'x':
		sb.edit(func(rig *engine.Rig) error {
			sched, err := rig.ScheduleByClip(sb.clip.Clip)
			if err != nil {
				return err
			}
			return rig.ClearTimedTargets(sched.Index, sb.selected)
		})
	}
	return true
}

// togglePause ends the play session on pause so attachments are back at their authored poses for editing
func (sb *sandbox) togglePause() {
	if sb.clock.Toggle() {
		sb.sess.rig.Stop()
		sb.message = "paused: attachments restored, edits enabled"
		return
	}
	sb.message = ""
}

func (sb *sandbox) edit(fn func(rig *engine.Rig) error) {
	if !sb.clock.Paused() {
		sb.message = "pause with space to edit"
		return
	}
	if err := fn(sb.sess.rig); err != nil {
		sb.message = err.Error()
		return
	}
	sb.sess.rig.Flush()
	sb.message = "edited"
}

func (sb *sandbox) nextClip() {
	clips := sb.sess.host.Controller.Clips()
	if len(clips) == 0 {
		return
	}
	next := 0
	for i, c := range clips {
		if c.Name == sb.clip.Clip {
			next = (i + 1) % len(clips)
			break
		}
	}
	sb.clip.Play(clips[next].Name, sb.clip.Duration)
	sb.message = "playing " + clips[next].Name
}

func (sb *sandbox) draw() {
	sb.screen.Clear()
	width, _ := sb.screen.Size()

	snap, err := sb.sess.rig.Snapshot()
	if err != nil {
		drawText(sb.screen, 0, 0, styleWarn, err.Error())
		sb.screen.Show()
		return
	}

	state := "PLAYING"
	if sb.clock.Paused() {
		state = "PAUSED"
	}
	title := fmt.Sprintf("ikrig sandbox  controller: %s  clip: %s  %s", sb.sess.host.Controller.ID(), sb.clip.Clip, state)
	drawText(sb.screen, 0, 0, styleTitle, title)

	var sched *component.Schedule
	for _, s := range snap.Schedules {
		if s.Clip == sb.clip.Clip {
			sched = s
			break
		}
	}

	y := 2
	sb.drawTimeline(y, width, snap.Playback.Time, sched)
	y += 4

	globals := "off"
	if snap.Globals.Enabled {
		globals = "on"
	}
	individual := "suspended"
	if snap.Individual {
		individual = "running"
	}
	drawText(sb.screen, 0, y, styleText, fmt.Sprintf("globals: %s   individual: %s   frame: %d", globals, individual, snap.Frame))
	y += 2

	for _, limb := range core.Limbs {
		sb.drawLimb(y, limb, sched, snap.Globals.Targets[limb])
		y++
	}
	y++

	if sb.message != "" {
		drawText(sb.screen, 0, y, styleDim, sb.message)
	}
	y++
	drawText(sb.screen, 0, y, styleDim, "space pause  1-4/tab limb  d dynamic  x clear timed  g globals  n next clip  q quit")
	sb.screen.Show()
}

// drawTimeline renders the normalized clip time with the selected limb's eligible targets marked
func (sb *sandbox) drawTimeline(y, width int, now float64, sched *component.Schedule) {
	span := width - 2
	if span < 10 {
		return
	}

	drawText(sb.screen, 0, y, styleDim, "|"+strings.Repeat("-", span)+"|")
	if sched != nil {
		for _, target := range sched.Track(sb.selected).Eligible {
			style := styleText
			if target.State.Played {
				style = styleActive
			}
			sb.screen.SetContent(1+column(target.Config.Time, span), y, '◆', nil, style)
		}
	}
	sb.screen.SetContent(1+column(now, span), y+1, '^', nil, styleCursor)
	drawText(sb.screen, 0, y+2, styleDim, fmt.Sprintf("t=%.3f", now))
}

func (sb *sandbox) drawLimb(y int, limb core.Limb, sched *component.Schedule, global *component.Target) {
	style := styleText
	marker := "  "
	if limb == sb.selected {
		style = styleSelected
		marker = "> "
	}
	drawText(sb.screen, 0, y, style, fmt.Sprintf("%s%-11s", marker, limb))

	col := 14
	if sched != nil {
		track := sched.Track(limb)
		mode := "static "
		if track.Dynamic {
			mode = "dynamic"
		}
		drawText(sb.screen, col, y, statusStyle(track.Status), fmt.Sprintf("%-10s %s w=%.2f", track.Status, mode, currentWeight(track)))
	} else {
		drawText(sb.screen, col, y, styleDim, "no schedule")
	}
	drawText(sb.screen, col+30, y, statusStyle(global.Status), fmt.Sprintf("global %-10s", global.Status))

	g := sb.sess.host.Animator.Goal(limb)
	if g.PositionWeight > 0 {
		p := g.Position
		drawText(sb.screen, col+48, y, styleText, fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X(), p.Y(), p.Z()))
	}
}

// currentWeight is the blend weight of the latest activated eligible target, 1 when the default holds
func currentWeight(track *component.Track) float64 {
	for i := len(track.Eligible) - 1; i >= 0; i-- {
		if track.Eligible[i].State.Played {
			return track.Eligible[i].State.Weight
		}
	}
	return 1
}

func statusStyle(s core.Status) tcell.Style {
	switch s {
	case core.StatusActive:
		return styleActive
	case core.StatusIncomplete:
		return styleWarn
	default:
		return styleDim
	}
}

func column(t float64, span int) int {
	c := int(t * float64(span))
	if c >= span {
		c = span - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
