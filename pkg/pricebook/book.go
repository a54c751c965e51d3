package pricebook

import "container/heap"

func New() *Book {
	return &Book{
		active: map[int64]float64{},
	}
}

// Insert makes id active at price. Inserting an id that is already active
// replaces its price.
func (b *Book) Insert(id int64, price float64) {
	b.active[id] = price
	b.nextSeq++
	heap.Push(&b.prices, heapEntry{
		id:    id,
		price: price,
		seq:   b.nextSeq,
	})
}

// Erase removes id from the book. Erasing an inactive id does nothing.
func (b *Book) Erase(id int64) {
	if _, ok := b.active[id]; !ok {
		return
	}
	delete(b.active, id)
}

// Max returns the highest active price, or false when the book is empty.
func (b *Book) Max() (float64, bool) {
	best, ok := b.Best()
	if !ok {
		return 0, false
	}
	return best.Price, true
}

// Best returns the active entry holding the highest price. Ties go to the
// entry inserted first.
func (b *Book) Best() (Entry, bool) {
	b.discardStale()

	top, ok := b.prices.Peek()
	if !ok {
		return Entry{}, false
	}
	return Entry{ID: top.id, Price: top.price}, true
}

func (b *Book) discardStale() {
	for b.prices.Len() > 0 {
		top, _ := b.prices.Peek()
		if price, ok := b.active[top.id]; ok && price == top.price {
			return
		}
		heap.Pop(&b.prices)
		b.discarded++
	}
}

func (b *Book) Has(id int64) bool {
	_, ok := b.active[id]
	return ok
}

func (b *Book) Price(id int64) (float64, bool) {
	price, ok := b.active[id]
	return price, ok
}

// Len is the number of active orders.
func (b *Book) Len() int {
	return len(b.active)
}

// Pending is the number of heap entries, stale ones included.
func (b *Book) Pending() int {
	return b.prices.Len()
}

// Discarded counts stale heap entries dropped by queries so far.
func (b *Book) Discarded() int {
	return b.discarded
}
