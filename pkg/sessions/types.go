package sessions

import (
	"fmt"
	"sync"

	"twap-book/pkg/replay"
)

// Entry is one sequenced event of a session.
type Entry struct {
	Seq   int64        `json:"seq"`
	Event replay.Event `json:"event"`
}

type SequenceGapError struct {
	Expected int64
	Received int64
}

func (e *SequenceGapError) Error() string {
	return fmt.Sprintf("session sequence gap: expected %d got %d", e.Expected, e.Received)
}

type State struct {
	AppliedSeq    int64   `json:"appliedSeq"`
	Events        int     `json:"events"`
	LastTimestamp int64   `json:"lastTimestamp"`
	CurrentMax    float64 `json:"currentMax"`
	HasMax        bool    `json:"hasMax"`
	ActiveOrders  int     `json:"activeOrders"`
	Average       float64 `json:"average"`
	TotalTime     int64   `json:"totalTime"`
}

// Session is an incremental replay fed in sequenced batches.
type Session struct {
	engine  *replay.Engine
	applied int64
	last    replay.Observation
	mu      sync.Mutex
}
