package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Gender options accepted on a case report. Empty means not given.
const (
	GenderMale      = "male"
	GenderFemale    = "female"
	GenderOther     = "other"
	GenderPreferNot = "prefer-not"
)

const maxReportedAge = 130

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat,omitempty"`
	Lon float64 `json:"lon,omitempty"`
}

// CaseReport is a self-reported illness case from the community.
type CaseReport struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Age            string    `json:"age,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	Village        string    `json:"village"`
	Phone          string    `json:"phone,omitempty"`
	Symptoms       string    `json:"symptoms"`
	Duration       string    `json:"duration,omitempty"`
	WaterSource    string    `json:"water_source,omitempty"`
	AdditionalInfo string    `json:"additional_info,omitempty"`
	SubmittedAt    time.Time `json:"submitted_at"`

	// Geocoding enrichment fields.
	Geo              Geo     `json:"geo,omitempty"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"` // "forward", "original", "failed"
}

// ValidationError lists the report fields that failed validation.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Normalize trims surrounding whitespace from every free-text field.
func (r CaseReport) Normalize() CaseReport {
	for _, f := range []*string{
		&r.Name, &r.Age, &r.Gender, &r.Village, &r.Phone,
		&r.Symptoms, &r.Duration, &r.WaterSource, &r.AdditionalInfo,
	} {
		*f = strings.TrimSpace(*f)
	}
	return r
}

// Validate checks required fields and the constrained optional ones. It
// returns a *ValidationError, or nil when the report is acceptable.
func (r CaseReport) Validate() error {
	var verr ValidationError
	if r.Name == "" {
		verr.Missing = append(verr.Missing, "name")
	}
	if r.Village == "" {
		verr.Missing = append(verr.Missing, "village")
	}
	if r.Symptoms == "" {
		verr.Missing = append(verr.Missing, "symptoms")
	}

	if r.Age != "" {
		age, err := strconv.Atoi(r.Age)
		if err != nil || age < 0 || age > maxReportedAge {
			verr.Invalid = append(verr.Invalid, "age")
		}
	}
	if r.Gender != "" && !slices.Contains(Genders(), r.Gender) {
		verr.Invalid = append(verr.Invalid, "gender")
	}

	if len(verr.Missing) == 0 && len(verr.Invalid) == 0 {
		return nil
	}
	return &verr
}

// Acknowledgement is returned to the reporter once a report is accepted.
type Acknowledgement struct {
	ReportID    string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewAcknowledgement builds the confirmation for an accepted report.
func NewAcknowledgement(r CaseReport) Acknowledgement {
	return Acknowledgement{
		ReportID:    r.ID,
		Title:       "Report submitted",
		Message:     "Your report has been sent to local health authorities. You will be contacted if needed.",
		SubmittedAt: r.SubmittedAt,
	}
}

// Genders returns the accepted gender options.
func Genders() []string {
	return []string{GenderMale, GenderFemale, GenderOther, GenderPreferNot}
}

// Villages returns the monitored villages offered on the report form.
func Villages() []string {
	return []string{
		"Guwahati Rural",
		"Dibrugarh",
		"Jorhat",
		"Silchar",
		"Tezpur",
		"Nagaon",
		"Kokrajhar",
		"Bongaigaon",
		"Golaghat",
		"Other",
	}
}

// ReportWaterSources returns the water-source choices on the report form.
// These are descriptive and differ from the scored water-source catalog.
func ReportWaterSources() []string {
	return []string{
		"Private Well",
		"Public Well / Tube Well",
		"River / Stream",
		"Pond / Lake",
		"Treated Water Supply",
		"Bottled Water",
		"Other",
	}
}

// ReportOptions groups the choices offered on the report form.
type ReportOptions struct {
	Villages     []string `json:"villages"`
	Genders      []string `json:"genders"`
	WaterSources []string `json:"water_sources"`
}

// NewReportOptions returns the report form choices.
func NewReportOptions() ReportOptions {
	return ReportOptions{
		Villages:     Villages(),
		Genders:      Genders(),
		WaterSources: ReportWaterSources(),
	}
}

// String identifies a report in logs without exposing personal details.
func (r CaseReport) String() string {
	return fmt.Sprintf("report %s (%s)", r.ID, r.Village)
}
