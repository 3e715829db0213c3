package domain

import "regexp"

// rePhone accepts E.164 phone numbers.
var rePhone = regexp.MustCompile(`^\+[0-9]{10,15}$`)

// ValidatePhone checks if the given string is a valid phone number.
func ValidatePhone(s string) bool {
	return rePhone.MatchString(s)
}

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Driver represents a delivery driver.
type Driver struct {
	ID                  int64
	Name                string
	Phone               string
	Online              bool
	Location            *Point
	Rating              float64
	CompletedDeliveries int
}

// Locatable reports whether the driver has reported a position at least once.
func (d Driver) Locatable() bool {
	return d.Location != nil
}

// PartialDriverUpdate carries optional fields to update a driver.
// A nil field means “do not change” that attribute.
type PartialDriverUpdate struct {
	ID     int64
	Name   *string
	Phone  *string
	Online *bool
	Rating *float64
}
