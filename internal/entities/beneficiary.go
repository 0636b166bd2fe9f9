package entities

import "time"

type BeneficiariesResponse struct {
	Beneficiaries []Beneficiary `json:"beneficiaries"`
}

type Beneficiary struct {
	ReferenceID       string `json:"beneficiary_reference_id"`
	Name              string `json:"name"`
	BirthYear         string `json:"birth_year"`
	Vaccine           string `json:"vaccine"`
	VaccinationStatus string `json:"vaccination_status"`
}

// Age derives the beneficiary age from the registered birth year. The
// upstream API only reports the year, so this matches its own age buckets.
func (b Beneficiary) Age(now time.Time) int {
	year := 0
	for _, c := range b.BirthYear {
		if c < '0' || c > '9' {
			return 0
		}
		year = year*10 + int(c-'0')
	}
	if year == 0 {
		return 0
	}
	return now.Year() - year
}
