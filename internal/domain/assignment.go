package domain

// Default assignment constraints applied when a caller supplies no override.
const (
	DefaultMaxDistanceKm = 10.0
	DefaultMinRating     = 3.0
)

// AssignmentCriteria constrains driver selection for a single assignment call.
// Zero fields fall back to the package defaults; the value is never mutated
// after construction.
type AssignmentCriteria struct {
	MaxDistanceKm float64
	MinRating     float64
	PreferRating  bool
}

// WithDefaults returns a copy with zero constraints replaced by the defaults.
func (c AssignmentCriteria) WithDefaults() AssignmentCriteria {
	if c.MaxDistanceKm <= 0 {
		c.MaxDistanceKm = DefaultMaxDistanceKm
	}
	if c.MinRating <= 0 {
		c.MinRating = DefaultMinRating
	}
	return c
}

// AssignmentResult - struct representing the outcome of one assignment attempt.
type AssignmentResult struct {
	Assigned         bool
	OrderID          int64
	DriverID         int64
	DriverName       string
	DistanceKm       float64
	EstimatedMinutes int
	Reason           string
}

// BatchResult aggregates per-order outcomes of one assignment pass.
type BatchResult struct {
	Total    int
	Assigned int
	Failed   int
	Results  []AssignmentResult
}

// Notification is an intent to notify a user about an order event.
// Delivery is best-effort; the sender never waits on the outcome.
type Notification struct {
	UserID  int64
	OrderID int64
	Title   string
	Message string
	Type    string
}

// Notification types emitted by the dispatch engine.
const (
	NotificationTypeDriverAssigned = "driver_assigned"
	NotificationTypeOrderAssigned  = "order_assigned"
)
