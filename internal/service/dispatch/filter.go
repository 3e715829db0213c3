package dispatch

import "github.com/mjperez2704/deli-back-office/internal/domain"

// eligibleDrivers narrows the candidate pool to drivers with a known location
// and a rating at or above the criteria minimum, dropping excludeID when it
// is non-zero. Pure; input order is preserved.
func eligibleDrivers(drivers []domain.Driver, c domain.AssignmentCriteria, excludeID int64) []domain.Driver {
	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if excludeID != 0 && d.ID == excludeID {
			continue
		}
		if !d.Locatable() {
			continue
		}
		if d.Rating < c.MinRating {
			continue
		}
		out = append(out, d)
	}
	return out
}

// withoutDriver returns drivers minus the one with the given id.
func withoutDriver(drivers []domain.Driver, id int64) []domain.Driver {
	out := make([]domain.Driver, 0, len(drivers))
	for _, d := range drivers {
		if d.ID == id {
			continue
		}
		out = append(out, d)
	}
	return out
}
