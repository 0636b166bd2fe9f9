package service

import (
	"github.com/pulkitkochar/Book-Vaccine/internal/entities"
)

// The API only reports sessions bookable by this client for the 18+ bucket.
const matchMinAge = 18

// SlotMatch pairs a center with one of its sessions.
type SlotMatch struct {
	Center  entities.Center
	Session entities.SessionSlot
}

// MatchResult is the outcome of filtering one availability response.
// Actionable sessions may be booked; Watched sessions qualify on age and
// capacity but miss a vaccine or center preference. They are alerted,
// never booked. AnyAvailable distinguishes "nothing qualifies for anyone"
// from "slots exist but don't meet the preferences".
type MatchResult struct {
	Actionable   []SlotMatch
	Watched      []SlotMatch
	AnyAvailable bool
}

// MatchSessions walks the centers in server order and classifies every
// session against the criteria. Pure: same input, same result.
func MatchSessions(centers []entities.Center, criteria entities.MatchCriteria) MatchResult {
	var result MatchResult
	for _, center := range centers {
		for _, session := range center.Sessions {
			if !qualifies(session, criteria) {
				continue
			}
			result.AnyAvailable = true
			match := SlotMatch{Center: center, Session: session}
			if criteria.VaccineOK(session.Vaccine) && criteria.CenterOK(center.Name) {
				result.Actionable = append(result.Actionable, match)
			} else {
				result.Watched = append(result.Watched, match)
			}
		}
	}
	return result
}

func qualifies(s entities.SessionSlot, c entities.MatchCriteria) bool {
	if s.MinAgeLimit != matchMinAge {
		return false
	}
	if s.AvailableCapacity < c.Required {
		return false
	}
	if s.DoseCapacity(c.Dose) < c.Required {
		return false
	}
	return true
}
