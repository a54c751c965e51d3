package replay

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	ev, err := ParseEvent("12 I 3 15.25")
	require.NoError(t, err)
	assert.Equal(t, Event{Timestamp: 12, Op: OpInsert, OrderID: 3, Price: 15.25}, ev)

	ev, err = ParseEvent("  8\tE   2 ")
	require.NoError(t, err)
	assert.Equal(t, Event{Timestamp: 8, Op: OpErase, OrderID: 2}, ev)
}

func TestParseEventRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"1 I":         "line",
		"x I 1 10":    "timestamp",
		"1 X 1 10":    "op",
		"1 I one 10":  "order_id",
		"1 I 1":       "price",
		"1 I 1 ten":   "price",
		"1 I 1 10 11": "price",
		"1 E 1 10":    "line",
	}
	for line, field := range cases {
		_, err := ParseEvent(line)
		var malformed *MalformedEventError
		require.True(t, errors.As(err, &malformed), line)
		assert.Equal(t, field, malformed.Field, line)
		assert.Contains(t, malformed.Error(), "malformed event")
	}
}

func TestEventValidate(t *testing.T) {
	assert.NoError(t, Event{Op: OpInsert, OrderID: 1, Price: 3}.Validate())
	assert.Error(t, Event{Op: "Z", OrderID: 1}.Validate())
	assert.Error(t, Event{Op: OpErase, OrderID: 1, Price: 3}.Validate())
}

func TestParseEventRejectsNonFinitePrice(t *testing.T) {
	for _, line := range []string{"0 I 1 1e400", "0 I 1 -1e400"} {
		_, err := ParseEvent(line)
		var malformed *MalformedEventError
		require.True(t, errors.As(err, &malformed), line)
		assert.Equal(t, "price", malformed.Field, line)
		assert.Equal(t, "not a finite number", malformed.Reason, line)
	}
}

func TestEventValidateRejectsNonFinitePrice(t *testing.T) {
	for _, price := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		err := Event{Op: OpInsert, OrderID: 1, Price: price}.Validate()
		var malformed *MalformedEventError
		require.True(t, errors.As(err, &malformed), "price %v", price)
		assert.Equal(t, "price", malformed.Field)
	}
}
