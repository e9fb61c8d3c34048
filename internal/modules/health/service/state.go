package service

import (
	"sync/atomic"
	"time"
)

type State struct {
	ready     atomic.Bool
	startedAt time.Time

	lastEventUnix atomic.Int64 // unix seconds
	events        atomic.Int64
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// TouchEvent вызывается раннером на каждое обработанное событие.
func (s *State) TouchEvent(t time.Time) {
	s.lastEventUnix.Store(t.Unix())
	s.events.Add(1)
}

func (s *State) LastEvent() time.Time {
	u := s.lastEventUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) EventsProcessed() int64 { return s.events.Load() }

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }
