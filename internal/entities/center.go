package entities

// CalendarResponse is the availability payload. A missing "centers" key
// decodes to a nil slice, which the caller treats as "no centers".
type CalendarResponse struct {
	Centers []Center `json:"centers"`
}

type Center struct {
	CenterID     int           `json:"center_id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	StateName    string        `json:"state_name"`
	DistrictName string        `json:"district_name"`
	BlockName    string        `json:"block_name"`
	Pincode      int           `json:"pincode"`
	FeeType      string        `json:"fee_type"`
	Sessions     []SessionSlot `json:"sessions"`
}

// SessionSlot is one date/vaccine offering at a center. Capacity counts are
// server-reported and ephemeral: they are re-fetched every poll cycle.
type SessionSlot struct {
	SessionID              string   `json:"session_id"`
	Date                   string   `json:"date"`
	Vaccine                string   `json:"vaccine"`
	MinAgeLimit            int      `json:"min_age_limit"`
	AvailableCapacity      int      `json:"available_capacity"`
	AvailableCapacityDose1 int      `json:"available_capacity_dose1"`
	AvailableCapacityDose2 int      `json:"available_capacity_dose2"`
	Slots                  []string `json:"slots"`
}

// DoseCapacity returns the remaining capacity for the given dose number.
func (s SessionSlot) DoseCapacity(dose int) int {
	if dose == 2 {
		return s.AvailableCapacityDose2
	}
	return s.AvailableCapacityDose1
}

// LastSlot returns the final entry of the reported slot-time sequence, the
// one picked when booking. Empty string when the server sent no slot times.
func (s SessionSlot) LastSlot() string {
	if len(s.Slots) == 0 {
		return ""
	}
	return s.Slots[len(s.Slots)-1]
}

type StatesResponse struct {
	States []State `json:"states"`
}

type State struct {
	StateID   int    `json:"state_id"`
	StateName string `json:"state_name"`
}

type DistrictsResponse struct {
	Districts []District `json:"districts"`
}

type District struct {
	DistrictID   int    `json:"district_id"`
	DistrictName string `json:"district_name"`
}
