// Package timeline derives display-time facts from a case: how long the
// CURRENT step has been running, whether it is overdue, and whether the
// statutory 90-day administrative-silence deadline (mandado de segurança)
// has been crossed. Everything here is read-only and recomputed per query.
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/benefits"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// StatutoryDeadlineDays is the administrative-silence threshold after which
// a mandado de segurança should be prepared.
const StatutoryDeadlineDays = 90

// AlertBasis names which reference date a deadline evaluation used.
type AlertBasis string

const (
	BasisLastExam  AlertBasis = "LAST_EXAM"
	BasisFiling    AlertBasis = "FILING"
	BasisCaseStart AlertBasis = "CASE_START"
)

// Progress is the elapsed-day counter for the CURRENT step.
type Progress struct {
	StepID      string `json:"step_id"`
	ElapsedDays int    `json:"elapsed_days"`
	Delayed     bool   `json:"delayed"`
}

// DeadlineAlert is the outcome of the statutory deadline evaluation.
type DeadlineAlert struct {
	Fires         bool       `json:"fires"`
	ReferenceDate time.Time  `json:"reference_date"`
	ElapsedDays   int        `json:"elapsed_days"`
	Basis         AlertBasis `json:"basis"`
}

// ElapsedDays returns the number of whole days between from and now,
// truncated toward zero.
func ElapsedDays(from, now time.Time) int {
	return int(now.Sub(from).Hours() / 24)
}

// CurrentProgress computes the day counter for the case's CURRENT step.
// The reference date is the previous step's completion date, or the case
// start date when the current step is the first. Returns false when the case
// has no CURRENT step or the previous step carries no completion date.
func CurrentProgress(c *models.LegalCase, now time.Time) (Progress, bool) {
	steps := orderedSteps(c)
	idx := -1
	for i := range steps {
		if steps[i].Status == models.StepCurrent {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Progress{}, false
	}

	var ref time.Time
	if idx == 0 {
		ref = c.StartDate
	} else {
		prev := steps[idx-1]
		if prev.CompletedDate == nil {
			return Progress{}, false
		}
		ref = *prev.CompletedDate
	}

	elapsed := ElapsedDays(ref, now)
	return Progress{
		StepID:      steps[idx].ID,
		ElapsedDays: elapsed,
		Delayed:     steps[idx].ExpectedDuration > 0 && elapsed > steps[idx].ExpectedDuration,
	}, true
}

// StatutoryAlert evaluates the 90-day mandado de segurança rule. It applies
// only to BENEFITS-family cases in the administrative venue; other cases
// return nil.
//
// Reference-date selection:
//   - no benefit type set: case start date;
//   - benefit requires an exam: completion date of the last completed step
//     (by step order) whose label mentions "perícia" or "social", falling
//     back to the completed "entrada" (filing) step, then to the start date;
//   - benefit without exam: the completed "entrada" step, else start date.
func StatutoryAlert(c *models.LegalCase, now time.Time) *DeadlineAlert {
	if c.Family != models.FamilyBenefits || c.Venue != models.VenueAdministrative {
		return nil
	}

	ref := c.StartDate
	basis := BasisCaseStart

	if c.BenefitType != nil {
		if benefits.RequiresExam(*c.BenefitType) {
			if exam := lastCompletedMatching(c, "perícia", "social"); exam != nil {
				ref = *exam.CompletedDate
				basis = BasisLastExam
			} else if filing := firstCompletedMatching(c, "entrada"); filing != nil {
				ref = *filing.CompletedDate
				basis = BasisFiling
			}
		} else if filing := firstCompletedMatching(c, "entrada"); filing != nil {
			ref = *filing.CompletedDate
			basis = BasisFiling
		}
	}

	elapsed := ElapsedDays(ref, now)
	return &DeadlineAlert{
		Fires:         elapsed > StatutoryDeadlineDays,
		ReferenceDate: ref,
		ElapsedDays:   elapsed,
		Basis:         basis,
	}
}

// lastCompletedMatching returns the last completed step, in step order, whose
// label contains any of the given substrings. Last by order, not by date:
// a later milestone wins even when it was back-dated.
func lastCompletedMatching(c *models.LegalCase, substrings ...string) *models.Step {
	steps := orderedSteps(c)
	var match *models.Step
	for i := range steps {
		if steps[i].Status != models.StepCompleted || steps[i].CompletedDate == nil {
			continue
		}
		label := strings.ToLower(steps[i].Label)
		for _, sub := range substrings {
			if strings.Contains(label, sub) {
				match = &steps[i]
				break
			}
		}
	}
	return match
}

func firstCompletedMatching(c *models.LegalCase, substrings ...string) *models.Step {
	steps := orderedSteps(c)
	for i := range steps {
		if steps[i].Status != models.StepCompleted || steps[i].CompletedDate == nil {
			continue
		}
		label := strings.ToLower(steps[i].Label)
		for _, sub := range substrings {
			if strings.Contains(label, sub) {
				return &steps[i]
			}
		}
	}
	return nil
}

// IsDocumentationStep reports whether a step is the case's document-capture
// milestone, identified by label substring as the original portal did.
func IsDocumentationStep(s *models.Step) bool {
	return strings.Contains(strings.ToLower(s.Label), "documenta")
}

func orderedSteps(c *models.LegalCase) []models.Step {
	steps := make([]models.Step, len(c.Steps))
	copy(steps, c.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].StepOrder < steps[j].StepOrder })
	return steps
}
