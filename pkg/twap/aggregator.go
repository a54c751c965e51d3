// Package twap integrates a step function of maximum prices over time.
package twap

import (
	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// PriceTime is the time credited to one maximum price.
type PriceTime struct {
	Price    float64 `json:"price"`
	Duration int64   `json:"duration"`
}

// Aggregator accumulates price × duration for each interval the book spent
// at a maximum, crediting an interval when the maximum changes.
//
// The first observation only opens an interval and the interval after the
// last observation is never closed, so neither contributes.
type Aggregator struct {
	sum       decimal.Decimal
	total     int64
	started   bool
	finalized bool

	lastTS    int64
	lastPrice float64
	lastOK    bool

	byPrice *btree.Map[float64, int64]
}

func New() *Aggregator {
	return &Aggregator{
		sum:     decimal.Zero,
		byPrice: btree.NewMap[float64, int64](32),
	}
}

// Observe records the maximum (ok=false when the book is empty) in effect
// from ts onwards. It returns false if the aggregator was already finalized.
func (a *Aggregator) Observe(ts int64, price float64, ok bool) bool {
	if a.finalized {
		return false
	}
	if !a.started {
		a.started = true
		a.lastTS, a.lastPrice, a.lastOK = ts, price, ok
		return true
	}

	if a.changed(price, ok) && a.lastOK {
		duration := ts - a.lastTS
		a.sum = a.sum.Add(decimal.NewFromFloat(a.lastPrice).Mul(decimal.NewFromInt(duration)))
		a.total += duration

		credited, _ := a.byPrice.Get(a.lastPrice)
		a.byPrice.Set(a.lastPrice, credited+duration)
	}

	a.lastTS, a.lastPrice, a.lastOK = ts, price, ok
	return true
}

func (a *Aggregator) changed(price float64, ok bool) bool {
	if ok != a.lastOK {
		return true
	}
	return ok && price != a.lastPrice
}

// Finalize returns the time-weighted average and closes the aggregator.
func (a *Aggregator) Finalize() float64 {
	a.finalized = true
	return a.Average()
}

// Average is the time-weighted average so far, or 0 if no time has been
// credited.
func (a *Aggregator) Average() float64 {
	return a.AverageDecimal().InexactFloat64()
}

func (a *Aggregator) AverageDecimal() decimal.Decimal {
	if a.total <= 0 {
		return decimal.Zero
	}
	return a.sum.Div(decimal.NewFromInt(a.total))
}

func (a *Aggregator) WeightedSum() decimal.Decimal {
	return a.sum
}

func (a *Aggregator) TotalTime() int64 {
	return a.total
}

func (a *Aggregator) Finalized() bool {
	return a.finalized
}

// Last returns the most recent observation. ok reports whether the book had
// a maximum then; started is false before the first observation.
func (a *Aggregator) Last() (ts int64, price float64, ok bool, started bool) {
	return a.lastTS, a.lastPrice, a.lastOK, a.started
}

// Profile lists the credited time per maximum price, highest price first.
func (a *Aggregator) Profile() []PriceTime {
	profile := make([]PriceTime, 0, a.byPrice.Len())
	a.byPrice.Reverse(func(price float64, duration int64) bool {
		profile = append(profile, PriceTime{Price: price, Duration: duration})
		return true
	})
	return profile
}
