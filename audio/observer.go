package audio

import (
	"github.com/lixenwraith/ikrig/core"
	"github.com/lixenwraith/ikrig/event"
)

// CueObserver turns rig events into cues
type CueObserver struct {
	sink Sink
}

// NewCueObserver creates an observer playing into sink
func NewCueObserver(sink Sink) *CueObserver {
	return &CueObserver{sink: sink}
}

// EventTypes returns the event types CueObserver handles
func (o *CueObserver) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventTargetActivated,
		event.EventBlendSettled,
		event.EventLoopWrapped,
	}
}

// HandleEvent plays the cue matching ev
func (o *CueObserver) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventTargetActivated:
		if p, ok := ev.Payload.(*event.TargetPayload); ok {
			o.sink.Play(CueActivate, p.Limb)
		}
	case event.EventBlendSettled:
		if p, ok := ev.Payload.(*event.TargetPayload); ok {
			o.sink.Play(CueSettle, p.Limb)
		}
	case event.EventLoopWrapped:
		o.sink.Play(CueLoop, core.RightHand)
	}
}
