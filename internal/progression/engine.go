// Package progression implements the step state machine that drives a case
// through its milestones: template instantiation, completion with advance of
// the CURRENT pointer, and structural edits (insert/delete) with contiguous
// re-indexing. All functions are pure over step slices; persistence is the
// caller's concern.
package progression

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

var (
	ErrStepNotFound = errors.New("step not found")
	ErrNoSteps      = errors.New("case has no steps")
)

// Update describes one mutation of a step. Comment, label and duration edits
// may ride along with a completion in a single call.
type Update struct {
	Comment     *string
	Label       *string
	Duration    *int
	Complete    bool
	CompletedAt time.Time
}

// Instantiate snapshots a template's step blueprints into live case steps.
// The first step becomes CURRENT, the rest LOCKED. The result is detached
// from the template: later template edits never reach the case.
func Instantiate(blueprint []models.TemplateStep) []models.Step {
	sorted := make([]models.TemplateStep, len(blueprint))
	copy(sorted, blueprint)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StepOrder < sorted[j].StepOrder })

	steps := make([]models.Step, 0, len(sorted))
	for i, ts := range sorted {
		status := models.StepLocked
		if i == 0 {
			status = models.StepCurrent
		}
		id, _ := uuid.NewV7()
		steps = append(steps, models.Step{
			ID:               id.String(),
			Label:            ts.Label,
			Status:           status,
			StepOrder:        i,
			ExpectedDuration: ts.ExpectedDuration,
		})
	}
	return steps
}

// Apply mutates the identified step and returns the resulting step list.
// On completion the step with the smallest stepOrder strictly greater than
// the completed one is promoted to CURRENT, a gap-tolerant lookup rather
// than stepOrder+1. Promotion only happens when the completed step actually held
// the CURRENT pointer, so completing an already-passed or skipped step never
// produces two CURRENT steps. Completing the last step leaves the case with
// no CURRENT step; concluding the case stays a deliberate staff action.
func Apply(steps []models.Step, stepID string, upd Update) ([]models.Step, error) {
	out := cloneSteps(steps)

	idx := indexOf(out, stepID)
	if idx < 0 {
		return nil, ErrStepNotFound
	}
	step := &out[idx]

	if upd.Comment != nil {
		step.AdminComment = *upd.Comment
	}
	if upd.Label != nil && *upd.Label != "" {
		step.Label = *upd.Label
	}
	if upd.Duration != nil {
		step.ExpectedDuration = *upd.Duration
	}

	if upd.Complete {
		wasCurrent := step.Status == models.StepCurrent
		step.Status = models.StepCompleted
		completed := upd.CompletedAt
		if completed.IsZero() {
			completed = time.Now()
		}
		step.CompletedDate = &completed

		if wasCurrent {
			if next := nextByOrder(out, step.StepOrder); next != nil {
				next.Status = models.StepCurrent
			}
		}
	}

	return out, nil
}

// Insert places a new LOCKED step at position, shifting the stepOrder of all
// steps at or after it. The new step starts LOCKED even when inserted before
// the CURRENT step; the CURRENT pointer never moves on insert.
func Insert(steps []models.Step, label string, position, expectedDuration int) []models.Step {
	out := cloneSteps(steps)
	sortByOrder(out)

	if position < 0 {
		position = 0
	}
	if position > len(out) {
		position = len(out)
	}

	for i := range out {
		if out[i].StepOrder >= position {
			out[i].StepOrder++
		}
	}

	id, _ := uuid.NewV7()
	out = append(out, models.Step{
		ID:               id.String(),
		Label:            label,
		Status:           models.StepLocked,
		StepOrder:        position,
		ExpectedDuration: expectedDuration,
	})

	reindex(out)
	return out
}

// Remove deletes a step and closes the gap, re-indexing survivors to a
// contiguous 0..N-1 range. When the removed step held the CURRENT pointer,
// the next surviving step is promoted so the case never loses its pointer
// mid-progression.
func Remove(steps []models.Step, stepID string) ([]models.Step, error) {
	out := cloneSteps(steps)
	sortByOrder(out)

	idx := indexOf(out, stepID)
	if idx < 0 {
		return nil, ErrStepNotFound
	}
	wasCurrent := out[idx].Status == models.StepCurrent

	out = append(out[:idx], out[idx+1:]...)
	reindex(out)

	if wasCurrent && idx < len(out) && out[idx].Status == models.StepLocked {
		out[idx].Status = models.StepCurrent
	}

	return out, nil
}

// InsertTemplateStep adds a blueprint step to a template's step list. A nil
// position appends; otherwise existing steps at or after the position shift
// by one and the new step lands exactly there.
func InsertTemplateStep(steps []models.TemplateStep, label string, expectedDuration int, position *int) []models.TemplateStep {
	out := make([]models.TemplateStep, len(steps))
	copy(out, steps)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })

	pos := len(out)
	if position != nil {
		pos = *position
		if pos < 0 {
			pos = 0
		}
		if pos > len(out) {
			pos = len(out)
		}
		for i := range out {
			if out[i].StepOrder >= pos {
				out[i].StepOrder++
			}
		}
	}

	id, _ := uuid.NewV7()
	out = append(out, models.TemplateStep{
		ID:               id.String(),
		Label:            label,
		ExpectedDuration: expectedDuration,
		StepOrder:        pos,
	})

	sort.SliceStable(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	for i := range out {
		out[i].StepOrder = i
	}
	return out
}

// RemoveTemplateStep deletes a blueprint step and re-indexes the remainder.
func RemoveTemplateStep(steps []models.TemplateStep, stepID string) ([]models.TemplateStep, error) {
	out := make([]models.TemplateStep, 0, len(steps))
	found := false
	for _, s := range steps {
		if s.ID == stepID {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return nil, ErrStepNotFound
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StepOrder < out[j].StepOrder })
	for i := range out {
		out[i].StepOrder = i
	}
	return out, nil
}

/// Validate checks the contiguity invariant: stepOrder values form 0..N-1
// with no duplicates, and at most one step is CURRENT.
func Validate(steps []models.Step) error {
	seen := make(map[int]bool, len(steps))
	current := 0
	for _, s := range steps {
		if s.StepOrder < 0 || s.StepOrder >= len(steps) || seen[s.StepOrder] {
			return errors.New("step order is not contiguous")
		}
		seen[s.StepOrder] = true
		if s.Status == models.StepCurrent {
			current++
		}
	}
	if current > 1 {
		return errors.New("more than one current step")
	}
	return nil
}

func cloneSteps(steps []models.Step) []models.Step {
	out := make([]models.Step, len(steps))
	copy(out, steps)
	return out
}

func indexOf(steps []models.Step, stepID string) int {
	for i := range steps {
		if steps[i].ID == stepID {
			return i
		}
	}
	return -1
}

func sortByOrder(steps []models.Step) {
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].StepOrder < steps[j].StepOrder })
}

func reindex(steps []models.Step) {
	sortByOrder(steps)
	for i := range steps {
		steps[i].StepOrder = i
	}
}

// nextByOrder returns the step with the smallest stepOrder strictly greater
// than after, or nil when none survives.
func nextByOrder(steps []models.Step, after int) *models.Step {
	var next *models.Step
	for i := range steps {
		if steps[i].StepOrder <= after {
			continue
		}
		if next == nil || steps[i].StepOrder < next.StepOrder {
			next = &steps[i]
		}
	}
	return next
}
