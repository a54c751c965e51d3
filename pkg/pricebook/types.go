package pricebook

// Entry is a live order: its identifier and current price.
type Entry struct {
	ID    int64   `json:"orderId"`
	Price float64 `json:"price"`
}

// Book tracks active orders and answers maximum-price queries.
//
// The heap may hold entries for orders that were erased or re-priced since
// they were pushed. Those are dropped lazily when they reach the top.
// A Book is not safe for concurrent use.
type Book struct {
	active    map[int64]float64
	prices    entryHeap
	nextSeq   uint64
	discarded int
}
