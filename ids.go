package console

import (
	"sync/atomic"
	"time"
)

// IDGenerator hands out identifiers for locally created records.
type IDGenerator interface {
	NextID() int64
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() int64

func (f IDGeneratorFunc) NextID() int64 {
	return f()
}

// ClockIDGenerator issues millisecond timestamps, bumped by one whenever the
// clock has not advanced, so ids stay unique and increasing for the life of
// the generator even with several creates in the same millisecond.
type ClockIDGenerator struct {
	last atomic.Int64
	now  func() time.Time
}

// NewClockIDGenerator uses time.Now when clock is nil.
func NewClockIDGenerator(clock func() time.Time) *ClockIDGenerator {
	if clock == nil {
		clock = time.Now
	}
	return &ClockIDGenerator{now: clock}
}

func (g *ClockIDGenerator) NextID() int64 {
	candidate := g.now().UnixMilli()
	for {
		last := g.last.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// SequenceIDGenerator counts up from a starting value.
type SequenceIDGenerator struct {
	next atomic.Int64
}

func NewSequenceIDGenerator(start int64) *SequenceIDGenerator {
	g := &SequenceIDGenerator{}
	g.next.Store(start - 1)
	return g
}

func (g *SequenceIDGenerator) NextID() int64 {
	return g.next.Add(1)
}
