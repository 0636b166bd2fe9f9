package entities

import "strings"

// MatchCriteria is the immutable eligibility filter for a run. Required is
// the number of beneficiaries being booked together.
type MatchCriteria struct {
	Dose              int
	Required          int
	VaccinePreference string
	CenterPreference  string
}

// VaccineOK reports whether a session's vaccine satisfies the preference.
// An unset preference matches everything.
func (c MatchCriteria) VaccineOK(vaccine string) bool {
	return c.VaccinePreference == "" || vaccine == c.VaccinePreference
}

// CenterOK reports whether a center name satisfies the preference:
// case-insensitive substring containment.
func (c MatchCriteria) CenterOK(centerName string) bool {
	if c.CenterPreference == "" {
		return true
	}
	return strings.Contains(strings.ToLower(centerName), strings.ToLower(c.CenterPreference))
}
