package schemas

type PriceTime struct {
	Price    float64 `json:"price"`
	Duration int64   `json:"duration"`
}

type ReplayResponse struct {
	Average   float64     `json:"average"`
	Events    int         `json:"events"`
	TotalTime int64       `json:"totalTime"`
	Profile   []PriceTime `json:"profile"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type SessionEvent struct {
	Seq       int64   `json:"seq"`
	Timestamp int64   `json:"timestamp"`
	Op        string  `json:"op"`
	OrderID   int64   `json:"orderId"`
	Price     float64 `json:"price,omitempty"`
}

type ApplyEventsRequest struct {
	Events []SessionEvent `json:"events"`
}

type SessionStateResponse struct {
	SessionID     string  `json:"sessionId"`
	AppliedSeq    int64   `json:"appliedSeq"`
	Events        int     `json:"events"`
	LastTimestamp int64   `json:"lastTimestamp"`
	CurrentMax    float64 `json:"currentMax"`
	HasMax        bool    `json:"hasMax"`
	ActiveOrders  int     `json:"activeOrders"`
	Average       float64 `json:"average"`
	TotalTime     int64   `json:"totalTime"`
}

type ApplyEventsResponse struct {
	Applied int                  `json:"applied"`
	State   SessionStateResponse `json:"state"`
}

type SequenceGapResponse struct {
	Error    string               `json:"error"`
	Expected int64                `json:"expected"`
	Received int64                `json:"received"`
	Applied  int                  `json:"applied"`
	State    SessionStateResponse `json:"state"`
}

// ApplyEventsErrorResponse reports a rejected batch. Entries before the
// rejected one stay applied and are counted in Applied.
type ApplyEventsErrorResponse struct {
	Error   string               `json:"error"`
	Applied int                  `json:"applied"`
	State   SessionStateResponse `json:"state"`
}
