package sessions

import (
	"errors"
	"strings"
	"testing"

	"twap-book/pkg/metrics"
	"twap-book/pkg/replay"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(seq int64, ts int64, op replay.Op, orderID int64, price float64) Entry {
	return Entry{
		Seq: seq,
		Event: replay.Event{
			Timestamp: ts,
			Op:        op,
			OrderID:   orderID,
			Price:     price,
		},
	}
}

func TestApplyInOrderBatches(t *testing.T) {
	s := newSession()

	applied, err := s.Apply([]Entry{
		testEntry(1, 0, replay.OpInsert, 1, 10),
		testEntry(2, 5, replay.OpInsert, 2, 20),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	applied, err = s.Apply([]Entry{
		testEntry(3, 8, replay.OpErase, 2, 0),
		testEntry(4, 12, replay.OpInsert, 3, 15),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, applied)

	state := s.State()
	assert.Equal(t, int64(4), state.AppliedSeq)
	assert.Equal(t, 15.0, state.CurrentMax)
	assert.True(t, state.HasMax)
	assert.Equal(t, 2, state.ActiveOrders)
	assert.Equal(t, 12.5, state.Average)
	assert.Equal(t, int64(12), state.LastTimestamp)
}

func TestApplySkipsDuplicates(t *testing.T) {
	s := newSession()
	first := testEntry(1, 0, replay.OpInsert, 1, 10)

	_, err := s.Apply([]Entry{first})
	require.NoError(t, err)

	applied, err := s.Apply([]Entry{first, testEntry(2, 3, replay.OpInsert, 2, 30)})
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.Equal(t, int64(2), s.AppliedSeq())
}

func TestApplyRejectsGap(t *testing.T) {
	s := newSession()

	_, err := s.Apply([]Entry{testEntry(1, 0, replay.OpInsert, 1, 10)})
	require.NoError(t, err)

	applied, err := s.Apply([]Entry{testEntry(3, 4, replay.OpInsert, 2, 20)})
	assert.Equal(t, 0, applied)

	var gap *SequenceGapError
	require.True(t, errors.As(err, &gap))
	assert.Equal(t, int64(2), gap.Expected)
	assert.Equal(t, int64(3), gap.Received)
	assert.True(t, strings.Contains(err.Error(), "expected 2"))
}

func TestApplyStopsAtBadEvent(t *testing.T) {
	s := newSession()

	applied, err := s.Apply([]Entry{
		testEntry(1, 5, replay.OpInsert, 1, 10),
		testEntry(2, 6, replay.OpInsert, 2, 20),
		testEntry(3, 1, replay.OpInsert, 3, 30),
		testEntry(4, 9, replay.OpInsert, 4, 40),
	})
	assert.Equal(t, 2, applied)

	var regression *replay.TimestampRegressionError
	require.True(t, errors.As(err, &regression))
	assert.Equal(t, int64(2), s.AppliedSeq())
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(1)

	id, err := r.Create()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = r.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)

	s, err := r.Get(id)
	require.NoError(t, err)
	_, err = s.Apply([]Entry{
		testEntry(1, 0, replay.OpInsert, 1, 10),
		testEntry(2, 4, replay.OpInsert, 2, 20),
	})
	require.NoError(t, err)

	res, err := r.Close(id)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Average)
	assert.Equal(t, 2, res.Events)
	assert.Equal(t, 0, r.Len())

	_, err = r.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Close(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyCountsMalformedEvents(t *testing.T) {
	s := newSession()
	before := testutil.ToFloat64(metrics.MalformedEvents)

	applied, err := s.Apply([]Entry{
		testEntry(1, 0, replay.OpInsert, 1, 10),
		testEntry(2, 1, replay.Op("Z"), 2, 0),
	})
	assert.Equal(t, 1, applied)

	var malformed *replay.MalformedEventError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.MalformedEvents))
}
