package models

import "time"

// CaseStatus is the lifecycle state of a case. CONCLUDED and
// MOVED_TO_JUDICIAL are terminal.
type CaseStatus string

const (
	CaseActive          CaseStatus = "ACTIVE"
	CaseConcluded       CaseStatus = "CONCLUDED"
	CaseMovedToJudicial CaseStatus = "MOVED_TO_JUDICIAL"
)

// StepStatus is the lifecycle state of a single step.
// Transitions are LOCKED → CURRENT → COMPLETED only.
type StepStatus string

const (
	StepLocked    StepStatus = "LOCKED"
	StepCurrent   StepStatus = "CURRENT"
	StepCompleted StepStatus = "COMPLETED"
)

// BenefitType classifies a social-security benefit request. Only meaningful
// for BENEFITS-family cases; the catalog with display labels and exam
// requirements lives in the benefits package.
type BenefitType string

const (
	BPCIdoso                  BenefitType = "BPC_IDOSO"
	AposentadoriaIdade        BenefitType = "APOSENTADORIA_IDADE"
	AposentadoriaContribuicao BenefitType = "APOSENTADORIA_CONTRIBUICAO"
	AposentadoriaEspecial     BenefitType = "APOSENTADORIA_ESPECIAL"
	AposentadoriaDeficiencia  BenefitType = "APOSENTADORIA_DEFICIENCIA"
	BPCDeficiente             BenefitType = "BPC_DEFICIENTE"
	PensaoMorte               BenefitType = "PENSAO_MORTE"
	AuxilioMaternidade        BenefitType = "AUXILIO_MATERNIDADE"
	AuxilioReclusao           BenefitType = "AUXILIO_RECLUSAO"
	AuxilioDoenca             BenefitType = "AUXILIO_DOENCA"
	AposentadoriaInvalidez    BenefitType = "APOSENTADORIA_INVALIDEZ"
	AuxilioAcidente           BenefitType = "AUXILIO_ACIDENTE"
	BenefitOutros             BenefitType = "OUTROS"
)

// Step is one milestone within a case's progression.
type Step struct {
	ID               string     `json:"id"`
	Label            string     `json:"label"`
	Status           StepStatus `json:"status"`
	StepOrder        int        `json:"step_order"`
	ExpectedDuration int        `json:"expected_duration,omitempty"`
	CompletedDate    *time.Time `json:"completed_date,omitempty"`
	AdminComment     string     `json:"admin_comment,omitempty"`
}

// LegalCase is a client's legal matter, instantiated from a template and
// tracked step by step. Steps are an owned copy: editing the originating
// template never changes an existing case.
type LegalCase struct {
	ID                string       `json:"id"`
	ClientID          string       `json:"client_id"`
	ClientName        string       `json:"client_name,omitempty"` // resolved on list, not stored
	TemplateID        string       `json:"template_id"`
	Family            DomainFamily `json:"family"`
	Venue             Venue        `json:"venue"`
	BenefitType       *BenefitType `json:"benefit_type,omitempty"`
	Title             string       `json:"title"`
	ResponsibleLawyer string       `json:"responsible_lawyer,omitempty"`
	StartDate         time.Time    `json:"start_date"`
	Status            CaseStatus   `json:"status"`
	Steps             []Step       `json:"steps"`
}

// CurrentStep returns the case's CURRENT step, or nil when all steps are
// completed or the case has no steps.
func (c *LegalCase) CurrentStep() *Step {
	for i := range c.Steps {
		if c.Steps[i].Status == StepCurrent {
			return &c.Steps[i]
		}
	}
	return nil
}

// StepByID returns the step with the given id, or nil.
func (c *LegalCase) StepByID(stepID string) *Step {
	for i := range c.Steps {
		if c.Steps[i].ID == stepID {
			return &c.Steps[i]
		}
	}
	return nil
}
