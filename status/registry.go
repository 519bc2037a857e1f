package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Registry holds rig counters and gauges shown by the sandbox and printed after a simulation
type Registry struct {
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[Float]
	Strings *MetricMap[Label]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[Float](),
		Strings: NewMetricMap[Label](),
	}
}

// Reset zeroes counters and gauges whose key starts with one of prefixes, all of them when none are given
// Cached pointers stay valid
func (r *Registry) Reset(prefixes ...string) {
	match := func(key string) bool {
		if len(prefixes) == 0 {
			return true
		}
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				return true
			}
		}
		return false
	}

	r.Ints.Range(func(k string, v *atomic.Int64) {
		if match(k) {
			v.Store(0)
		}
	})
	r.Floats.Range(func(k string, v *Float) {
		if match(k) {
			v.Set(0)
		}
	})
	r.Strings.Range(func(k string, v *Label) {
		if match(k) {
			v.Store("")
		}
	})
}

// Lines formats every metric as "key: value", ints first, each group sorted by key
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.Ints.Count()+r.Floats.Count()+r.Strings.Count())
	r.Ints.Range(func(k string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s: %d", k, v.Load()))
	})
	r.Floats.Range(func(k string, v *Float) {
		lines = append(lines, fmt.Sprintf("%s: %.3f", k, v.Get()))
	})
	r.Strings.Range(func(k string, v *Label) {
		lines = append(lines, fmt.Sprintf("%s: %s", k, v.Load()))
	})
	return lines
}
