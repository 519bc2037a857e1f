package event

import (
	"fmt"
	"strings"
)

// EventType represents the type of rig event
type EventType int

const (
	// EventAuthoringChanged signals an edit to authored rig data
	// Trigger: Rig authoring API | Consumer: ReadinessSystem | Payload: *AuthoringPayload
	EventAuthoringChanged EventType = iota

	// EventSchedulesRebuilt signals Refresh rederived schedules from the controller clip list
	// Trigger: Rig.Refresh | Consumer: ReadinessSystem, observers | Payload: *RebuildPayload
	EventSchedulesRebuilt

	// EventControllerStale signals the host swapped controllers since the last Refresh
	// Individual evaluation stays suspended until the next Refresh
	// Trigger: Rig.Update | Consumer: observers | Payload: *StalePayload
	EventControllerStale

	// EventLoopWrapped signals normalized time decreased frame over frame
	// Trigger: PlaybackSystem | Consumer: observers | Payload: *LoopPayload
	EventLoopWrapped

	// EventTargetActivated signals a timed target became current and started blending
	// Trigger: BlendSystem | Consumer: observers | Payload: *TargetPayload
	EventTargetActivated

	// EventBlendSettled signals a timed target's weight reached 1
	// Trigger: BlendSystem | Consumer: observers | Payload: *TargetPayload
	EventBlendSettled

	eventTypeCount
)

var typeNames = [eventTypeCount]string{
	EventAuthoringChanged: "authoring_changed",
	EventSchedulesRebuilt: "schedules_rebuilt",
	EventControllerStale:  "controller_stale",
	EventLoopWrapped:      "loop_wrapped",
	EventTargetActivated:  "target_activated",
	EventBlendSettled:     "blend_settled",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return fmt.Sprintf("event(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves an event name as printed by String
func ParseType(name string) (EventType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == key {
			return EventType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", name)
}

// Event is a single queued rig event stamped with the frame it was raised on
type Event struct {
	Type    EventType
	Payload any
	Frame   int64
}

// Types returns every event type in declaration order
func Types() []EventType {
	types := make([]EventType, eventTypeCount)
	for i := range types {
		types[i] = EventType(i)
	}
	return types
}
