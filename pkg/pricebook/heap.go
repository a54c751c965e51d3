package pricebook

import "container/heap"

type heapEntry struct {
	id    int64
	price float64
	seq   uint64
}

// entryHeap is a max-heap on price. Equal prices pop in insertion order.
type entryHeap struct {
	entries []heapEntry
}

func (h entryHeap) Len() int {
	return len(h.entries)
}

func (h entryHeap) Less(i, j int) bool {
	if h.entries[i].price != h.entries[j].price {
		return h.entries[i].price > h.entries[j].price
	}
	return h.entries[i].seq < h.entries[j].seq
}

func (h entryHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *entryHeap) Push(x any) {
	h.entries = append(h.entries, x.(heapEntry))
}

func (h *entryHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[:n-1]
	return item
}

func (h *entryHeap) Peek() (heapEntry, bool) {
	if h.Len() == 0 {
		return heapEntry{}, false
	}
	return h.entries[0], true
}

var _ heap.Interface = (*entryHeap)(nil)
