package entities

// BookingRequest is the body of the schedule call. All beneficiaries of a
// run are booked together in one request.
type BookingRequest struct {
	CenterID      int      `json:"center_id"`
	SessionID     string   `json:"session_id"`
	Beneficiaries []string `json:"beneficiaries"`
	Slot          string   `json:"slot"`
	Captcha       string   `json:"captcha"`
	Dose          int      `json:"dose"`
}

// BookingResult reports the raw outcome of a schedule call. Body is kept
// verbatim for the user; the server's rejection messages are the only
// diagnosis available.
type BookingResult struct {
	Booked bool
	Status int
	Body   string
}
