package handlers

type criteriaDTO struct {
	MaxDistanceKm *float64 `json:"max_distance_km,omitempty"`
	MinRating     *float64 `json:"min_rating,omitempty"`
	PreferRating  *bool    `json:"prefer_rating,omitempty"`
}

type assignOrderRequest struct {
	OrderID  int64        `json:"order_id"`
	Criteria *criteriaDTO `json:"criteria,omitempty"`
}

type reassignOrderRequest struct {
	OrderID         int64        `json:"order_id"`
	ExcludeDriverID int64        `json:"exclude_driver_id"`
	Criteria        *criteriaDTO `json:"criteria,omitempty"`
}

type assignPendingRequest struct {
	Criteria *criteriaDTO `json:"criteria,omitempty"`
}

type assignmentResultDTO struct {
	Assigned         bool    `json:"assigned"`
	OrderID          int64   `json:"order_id"`
	DriverID         int64   `json:"driver_id,omitempty"`
	DriverName       string  `json:"driver_name,omitempty"`
	DistanceKm       float64 `json:"distance_km,omitempty"`
	EstimatedMinutes int     `json:"estimated_minutes,omitempty"`
	Reason           string  `json:"reason,omitempty"`
}

type batchResultDTO struct {
	Total    int                   `json:"total"`
	Assigned int                   `json:"assigned"`
	Failed   int                   `json:"failed"`
	Results  []assignmentResultDTO `json:"results"`
}

type schedulerStartRequest struct {
	IntervalSeconds int `json:"interval_seconds"`
}

type schedulerStatusResponse struct {
	Active          bool `json:"active"`
	IntervalSeconds int  `json:"interval_seconds,omitempty"`
}

type etaResponse struct {
	OrderID          int64   `json:"order_id"`
	DriverID         int64   `json:"driver_id"`
	DistanceKm       float64 `json:"distance_km"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	Source           string  `json:"source"`
}
