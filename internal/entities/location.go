package entities

import "regexp"

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// LocationSelector picks the availability endpoint for a run: a district id
// or one-or-more six-digit pincodes. Exactly one variant is active.
type LocationSelector struct {
	DistrictID int
	Pincodes   []string
}

// ValidPincode reports whether s is a six-digit postal code.
func ValidPincode(s string) bool {
	return pincodePattern.MatchString(s)
}

// UsePincodes reports whether the pincode variant is active.
func (l LocationSelector) UsePincodes() bool {
	return len(l.Pincodes) > 0
}

// Normalize drops malformed pincodes and resolves which variant is active.
// Configuring both a district and valid pincodes is an input error; a
// pincode list that normalizes to empty falls back to the district when one
// is set. ok is false when no usable location remains.
func (l LocationSelector) Normalize() (out LocationSelector, ok bool, conflict bool) {
	var valid []string
	for _, pin := range l.Pincodes {
		if ValidPincode(pin) {
			valid = append(valid, pin)
		}
	}
	if len(valid) > 0 && l.DistrictID > 0 {
		return LocationSelector{}, false, true
	}
	if len(valid) > 0 {
		return LocationSelector{Pincodes: valid}, true, false
	}
	if l.DistrictID > 0 {
		return LocationSelector{DistrictID: l.DistrictID}, true, false
	}
	return LocationSelector{}, false, false
}
