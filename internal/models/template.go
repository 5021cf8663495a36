package models

// DomainFamily classifies which legal domain a template belongs to.
// The statutory 90-day deadline rule only applies to BENEFITS cases
// progressing in the ADMINISTRATIVE venue.
type DomainFamily string

const (
	FamilyGeneric  DomainFamily = "GENERIC"
	FamilyBenefits DomainFamily = "BENEFITS" // previdenciário
	FamilyLabor    DomainFamily = "LABOR"    // trabalhista
)

// Venue distinguishes administrative proceedings from court proceedings.
type Venue string

const (
	VenueAdministrative Venue = "ADMINISTRATIVE"
	VenueJudicial       Venue = "JUDICIAL"
)

// TemplateStep is one blueprint milestone inside a template.
type TemplateStep struct {
	ID               string `json:"id"`
	Label            string `json:"label"`
	ExpectedDuration int    `json:"expected_duration"` // days; 0 means no deadline tracked
	StepOrder        int    `json:"step_order"`
}

// CaseTemplate is a reusable ordered blueprint of steps. Cases snapshot a
// template's steps at creation time and never see later template edits.
type CaseTemplate struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Family   DomainFamily   `json:"family"`
	Venue    Venue          `json:"venue"`
	IsSystem bool           `json:"is_system"`
	Steps    []TemplateStep `json:"steps"`
}
