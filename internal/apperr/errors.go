package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a uniqueness or state conflict (HTTP 409).
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Dispatch failures. All are non-fatal: each maps to a structured reason on
// the assignment result, never an unhandled error escaping the engine.
var (
	// ErrOrderNotFound - the order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderState - the order status does not permit assignment.
	ErrOrderState = errors.New("order status does not allow assignment")
	// ErrNoDriversAvailable - no drivers are online.
	ErrNoDriversAvailable = errors.New("no drivers available")
	// ErrNoEligibleDrivers - every online driver was rejected by the eligibility filter.
	ErrNoEligibleDrivers = errors.New("no eligible drivers")
	// ErrNoNearestDriver - the nearest-driver search came back empty.
	ErrNoNearestDriver = errors.New("no nearest driver found")
	// ErrDistanceExceeded - the closest eligible driver is farther than the configured maximum.
	ErrDistanceExceeded = errors.New("nearest driver exceeds max distance")
	// ErrNoAlternativeDrivers - excluding the failed driver emptied the candidate pool.
	ErrNoAlternativeDrivers = errors.New("no alternative drivers")
	// ErrAssignmentPersist - the conditional assignment write did not take effect.
	ErrAssignmentPersist = errors.New("assignment persist failed")
)

// Reason maps a dispatch failure to a stable machine-readable token for
// assignment results. Unknown errors map to "internal_error".
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrOrderNotFound):
		return "order_not_found"
	case errors.Is(err, ErrOrderState):
		return "invalid_order_state"
	case errors.Is(err, ErrNoDriversAvailable):
		return "no_drivers_available"
	case errors.Is(err, ErrNoEligibleDrivers):
		return "no_eligible_drivers"
	case errors.Is(err, ErrNoNearestDriver):
		return "no_nearest_driver_found"
	case errors.Is(err, ErrDistanceExceeded):
		return "distance_exceeded"
	case errors.Is(err, ErrNoAlternativeDrivers):
		return "no_alternative_drivers"
	case errors.Is(err, ErrAssignmentPersist):
		return "assignment_persist_failed"
	default:
		return "internal_error"
	}
}

// Operational reports whether the failure is an expected dispatch outcome
// under normal load, as opposed to an infrastructure incident.
func Operational(err error) bool {
	for _, e := range []error{
		ErrNoDriversAvailable,
		ErrNoEligibleDrivers,
		ErrNoNearestDriver,
		ErrDistanceExceeded,
		ErrNoAlternativeDrivers,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
