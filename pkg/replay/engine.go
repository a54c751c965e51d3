package replay

import (
	"errors"
	"fmt"

	"twap-book/pkg/metrics"
	"twap-book/pkg/pricebook"
	"twap-book/pkg/twap"
)

// ErrInvariantViolation means the book reported a maximum for an order that
// is not active. The replay must stop: the average would be wrong.
var ErrInvariantViolation = errors.New("price book invariant violated")

var ErrFinalized = errors.New("replay already finalized")

type TimestampRegressionError struct {
	Previous int64
	Received int64
}

func (e *TimestampRegressionError) Error() string {
	return fmt.Sprintf("timestamp went backwards: previous %d got %d", e.Previous, e.Received)
}

// Observation is the maximum in effect after one event.
type Observation struct {
	Timestamp int64
	Max       float64
	HasMax    bool
}

type Result struct {
	Average   float64          `json:"average"`
	Events    int              `json:"events"`
	TotalTime int64            `json:"totalTime"`
	Profile   []twap.PriceTime `json:"profile"`
}

// Engine replays events against one book and one aggregator.
type Engine struct {
	book      *pricebook.Book
	agg       *twap.Aggregator
	events    int
	discarded int
}

func NewEngine() *Engine {
	return &Engine{
		book: pricebook.New(),
		agg:  twap.New(),
	}
}

func (e *Engine) Apply(ev Event) (Observation, error) {
	if e.agg.Finalized() {
		return Observation{}, ErrFinalized
	}
	if err := ev.Validate(); err != nil {
		metrics.MalformedEvents.Inc()
		return Observation{}, err
	}
	if lastTS, _, _, started := e.agg.Last(); started && ev.Timestamp < lastTS {
		return Observation{}, &TimestampRegressionError{Previous: lastTS, Received: ev.Timestamp}
	}

	switch ev.Op {
	case OpInsert:
		e.book.Insert(ev.OrderID, ev.Price)
	case OpErase:
		e.book.Erase(ev.OrderID)
	}
	metrics.EventsApplied.WithLabelValues(ev.Op.Label()).Inc()

	observation := Observation{Timestamp: ev.Timestamp}
	best, ok := e.book.Best()
	if discarded := e.book.Discarded(); discarded > e.discarded {
		metrics.StaleEntriesDiscarded.Add(float64(discarded - e.discarded))
		e.discarded = discarded
	}
	if ok {
		// Best already drops stale tops; this guards changes to Book.
		if price, active := e.book.Price(best.ID); !active || price != best.Price {
			return Observation{}, fmt.Errorf("%w: order %d reported at %v", ErrInvariantViolation, best.ID, best.Price)
		}
		observation.Max, observation.HasMax = best.Price, true
	}

	e.agg.Observe(observation.Timestamp, observation.Max, observation.HasMax)
	e.events++
	return observation, nil
}

func (e *Engine) Book() *pricebook.Book {
	return e.book
}

// Snapshot reports progress without finalizing.
func (e *Engine) Snapshot() Result {
	return Result{
		Average:   e.agg.Average(),
		Events:    e.events,
		TotalTime: e.agg.TotalTime(),
		Profile:   e.agg.Profile(),
	}
}

// Result finalizes the aggregator. Further Apply calls fail.
func (e *Engine) Result() Result {
	res := e.Snapshot()
	res.Average = e.agg.Finalize()
	return res
}
