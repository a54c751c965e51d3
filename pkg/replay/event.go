package replay

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Op string

const (
	OpInsert Op = "I"
	OpErase  Op = "E"
)

func (o Op) Valid() bool {
	return o == OpInsert || o == OpErase
}

func (o Op) Label() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpErase:
		return "erase"
	default:
		return "unknown"
	}
}

type Event struct {
	Timestamp int64   `json:"timestamp"`
	Op        Op      `json:"op"`
	OrderID   int64   `json:"orderId"`
	Price     float64 `json:"price,omitempty"`
}

type MalformedEventError struct {
	Line   int
	Field  string
	Raw    string
	Reason string
}

func (e *MalformedEventError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed event on line %d: %s: %s (%q)", e.Line, e.Field, e.Reason, e.Raw)
	}
	return fmt.Sprintf("malformed event: %s: %s (%q)", e.Field, e.Reason, e.Raw)
}

// ParseEvent parses "timestamp op order_id [price]". Inserts require a
// price; erases must not carry one.
func ParseEvent(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Event{}, &MalformedEventError{Field: "line", Raw: line, Reason: "expected at least 3 fields"}
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return Event{}, &MalformedEventError{Field: "timestamp", Raw: line, Reason: "not an integer"}
	}

	op := Op(fields[1])
	if !op.Valid() {
		return Event{}, &MalformedEventError{Field: "op", Raw: line, Reason: "expected I or E"}
	}

	orderID, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return Event{}, &MalformedEventError{Field: "order_id", Raw: line, Reason: "not an integer"}
	}

	ev := Event{Timestamp: ts, Op: op, OrderID: orderID}
	switch op {
	case OpInsert:
		if len(fields) != 4 {
			return Event{}, &MalformedEventError{Field: "price", Raw: line, Reason: "insert requires exactly one price"}
		}
		price, err := decimal.NewFromString(fields[3])
		if err != nil {
			return Event{}, &MalformedEventError{Field: "price", Raw: line, Reason: "not a number"}
		}
		ev.Price = price.InexactFloat64()
		if !finite(ev.Price) {
			return Event{}, &MalformedEventError{Field: "price", Raw: line, Reason: "not a finite number"}
		}
	case OpErase:
		if len(fields) != 3 {
			return Event{}, &MalformedEventError{Field: "line", Raw: line, Reason: "erase takes no price"}
		}
	}

	return ev, nil
}

// Validate checks an event that did not come through ParseEvent.
func (ev Event) Validate() error {
	raw := fmt.Sprintf("%d %s %d", ev.Timestamp, ev.Op, ev.OrderID)
	if !ev.Op.Valid() {
		return &MalformedEventError{Field: "op", Raw: raw, Reason: "expected I or E"}
	}
	if ev.Op == OpErase && ev.Price != 0 {
		return &MalformedEventError{Field: "price", Raw: raw, Reason: "erase takes no price"}
	}
	if !finite(ev.Price) {
		return &MalformedEventError{Field: "price", Raw: raw, Reason: "not a finite number"}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
