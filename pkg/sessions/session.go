package sessions

import (
	"errors"
	"fmt"

	"twap-book/pkg/replay"
)

func newSession() *Session {
	return &Session{
		engine: replay.NewEngine(),
	}
}

// Apply applies entries in sequence order and returns how many were new.
//
// - Entries with Seq <= the applied sequence are duplicates and skipped.
// - An entry that is not exactly the next sequence returns SequenceGapError.
// - An event error stops the batch; entries before it stay applied.
func (s *Session) Apply(entries []Entry) (int, error) {
	if s == nil {
		return 0, errors.New("nil session")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	applied := 0
	for _, entry := range entries {
		if entry.Seq <= s.applied {
			continue
		}

		expected := s.applied + 1
		if entry.Seq != expected {
			return applied, &SequenceGapError{Expected: expected, Received: entry.Seq}
		}

		observation, err := s.engine.Apply(entry.Event)
		if err != nil {
			return applied, fmt.Errorf("seq %d: %w", entry.Seq, err)
		}

		s.last = observation
		s.applied = entry.Seq
		applied++
	}

	return applied, nil
}

func (s *Session) AppliedSeq() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applied
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.engine.Snapshot()
	return State{
		AppliedSeq:    s.applied,
		Events:        snapshot.Events,
		LastTimestamp: s.last.Timestamp,
		CurrentMax:    s.last.Max,
		HasMax:        s.last.HasMax,
		ActiveOrders:  s.engine.Book().Len(),
		Average:       snapshot.Average,
		TotalTime:     snapshot.TotalTime,
	}
}

func (s *Session) finalize() replay.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.engine.Result()
}
