// Package loop runs an ordered list of systems once per frame and keeps
// per-system timing statistics.
package loop

import (
	"reflect"
	"time"
)

// System is one step of a frame. Systems keep whatever state they need
// between frames in their own fields.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during one Once call.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
}

// Commands buffers work that must run after every system in the frame has
// executed.
type Commands struct {
	defers []func()
}

// Defer queues fn to run when the frame is flushed.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush runs the queued functions in order and empties the buffer.
func (c *Commands) Flush() {
	for _, fn := range c.defers {
		fn()
	}
	c.defers = c.defers[:0]
}

// Stats summarises scheduler execution.
type Stats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats holds timings for one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
}

type systemTimings struct {
	name  string
	count int64
	min   time.Duration
	max   time.Duration
	total time.Duration
	last  time.Duration
}

// Scheduler executes systems in registration order.
type Scheduler struct {
	systems  []System
	timings  []*systemTimings
	commands Commands
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Register appends a system. Its stats are reported under the system's type
// name.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	s.systems = append(s.systems, system)
	s.timings = append(s.timings, &systemTimings{
		name: t.Name(),
		min:  time.Duration(1<<63 - 1),
	})
}

// Once executes every system with the given delta time, then flushes
// deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := &Frame{DeltaTime: dt, Commands: &s.commands}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		d := time.Since(start)

		st := s.timings[i]
		st.count++
		st.last = d
		st.total += d
		st.min = min(st.min, d)
		st.max = max(st.max, d)
	}

	s.commands.Flush()
}

// Stats returns a snapshot of execution statistics.
func (s *Scheduler) Stats() *Stats {
	stats := &Stats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.timings)),
	}

	for i, st := range s.timings {
		var avg time.Duration
		if st.count > 0 {
			avg = st.total / time.Duration(st.count)
		}
		stats.Systems[i] = SystemStats{
			Name:           st.name,
			ExecutionCount: st.count,
			MinDuration:    st.min,
			MaxDuration:    st.max,
			AvgDuration:    avg,
			LastDuration:   st.last,
		}
		stats.TotalExecutions += st.count
	}

	return stats
}
