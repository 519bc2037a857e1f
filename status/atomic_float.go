package status

import (
	"math"
	"sync/atomic"
)

// Float is a float64 gauge stored as bits; zero value reads 0.0
type Float struct {
	bits atomic.Uint64
}

// Set stores val
func (f *Float) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the current value
func (f *Float) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}
