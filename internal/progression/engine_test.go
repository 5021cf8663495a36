package progression

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

func blueprint(labels ...string) []models.TemplateStep {
	steps := make([]models.TemplateStep, len(labels))
	for i, label := range labels {
		steps[i] = models.TemplateStep{ID: label + "-tpl", Label: label, StepOrder: i, ExpectedDuration: 10}
	}
	return steps
}

func statuses(steps []models.Step) []models.StepStatus {
	out := make([]models.StepStatus, len(steps))
	for i, s := range steps {
		out[i] = s.Status
	}
	return out
}

func TestInstantiate(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))

	require.Len(t, steps, 3)
	assert.Equal(t, []models.StepStatus{models.StepCurrent, models.StepLocked, models.StepLocked}, statuses(steps))
	for i, s := range steps {
		assert.Equal(t, i, s.StepOrder)
		assert.NotEmpty(t, s.ID)
		assert.NotEqual(t, blueprint("A", "B", "C")[i].ID, s.ID, "case steps get fresh ids")
	}

	t.Run("unsorted blueprint", func(t *testing.T) {
		bp := blueprint("A", "B", "C")
		bp[0], bp[2] = bp[2], bp[0]
		steps := Instantiate(bp)
		assert.Equal(t, "A", steps[0].Label)
		assert.Equal(t, models.StepCurrent, steps[0].Status)
	})

	t.Run("empty blueprint", func(t *testing.T) {
		assert.Empty(t, Instantiate(nil))
	})
}

func TestApply_Complete(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))
	when := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	out, err := Apply(steps, steps[0].ID, Update{Complete: true, CompletedAt: when})
	require.NoError(t, err)

	assert.Equal(t, []models.StepStatus{models.StepCompleted, models.StepCurrent, models.StepLocked}, statuses(out))
	require.NotNil(t, out[0].CompletedDate)
	assert.Equal(t, when, *out[0].CompletedDate)

	// Input slice is untouched.
	assert.Equal(t, models.StepCurrent, steps[0].Status)
}

func TestApply_CompleteLastStep(t *testing.T) {
	steps := Instantiate(blueprint("A", "B"))

	out, err := Apply(steps, steps[0].ID, Update{Complete: true})
	require.NoError(t, err)
	out, err = Apply(out, out[1].ID, Update{Complete: true})
	require.NoError(t, err)

	assert.Equal(t, []models.StepStatus{models.StepCompleted, models.StepCompleted}, statuses(out))
}

func TestApply_CompletingNonCurrentDoesNotPromote(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))

	// Completing a LOCKED step out of order must not create a second CURRENT.
	out, err := Apply(steps, steps[2].ID, Update{Complete: true})
	require.NoError(t, err)

	assert.Equal(t, []models.StepStatus{models.StepCurrent, models.StepLocked, models.StepCompleted}, statuses(out))
}

func TestApply_GapTolerantPromotion(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))

	// Knock out B, then complete A: C must be promoted even though the
	// surviving orders are not contiguous yet.
	out, err := Apply(steps, steps[0].ID, Update{Complete: true})
	require.NoError(t, err)
	withGap := []models.Step{out[0], out[2]}
	withGap[0].Status = models.StepCurrent
	withGap[0].CompletedDate = nil

	out, err = Apply(withGap, withGap[0].ID, Update{Complete: true})
	require.NoError(t, err)
	assert.Equal(t, models.StepCurrent, out[1].Status)
}

func TestApply_MetadataEdits(t *testing.T) {
	steps := Instantiate(blueprint("A", "B"))

	comment := "aguardando cliente"
	label := "Entrada Retificada"
	duration := 25
	out, err := Apply(steps, steps[0].ID, Update{Comment: &comment, Label: &label, Duration: &duration})
	require.NoError(t, err)

	assert.Equal(t, "aguardando cliente", out[0].AdminComment)
	assert.Equal(t, "Entrada Retificada", out[0].Label)
	assert.Equal(t, 25, out[0].ExpectedDuration)
	assert.Equal(t, models.StepCurrent, out[0].Status, "metadata edits never advance the case")

	t.Run("empty label ignored", func(t *testing.T) {
		empty := ""
		out, err := Apply(steps, steps[0].ID, Update{Label: &empty})
		require.NoError(t, err)
		assert.Equal(t, "A", out[0].Label)
	})

	t.Run("unknown step", func(t *testing.T) {
		_, err := Apply(steps, "missing", Update{Complete: true})
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestInsert(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))

	out := Insert(steps, "New", 1, 15)
	require.Len(t, out, 4)
	assert.Equal(t, "New", out[1].Label)
	assert.Equal(t, models.StepLocked, out[1].Status)
	assert.Equal(t, 15, out[1].ExpectedDuration)
	for i, s := range out {
		assert.Equal(t, i, s.StepOrder)
	}

	t.Run("insert before current keeps pointer", func(t *testing.T) {
		out := Insert(steps, "Primeiro", 0, 0)
		assert.Equal(t, models.StepLocked, out[0].Status)
		assert.Equal(t, models.StepCurrent, out[1].Status)
	})

	t.Run("out of range clamps to append", func(t *testing.T) {
		out := Insert(steps, "Fim", 99, 0)
		assert.Equal(t, "Fim", out[len(out)-1].Label)
		assert.Equal(t, len(out)-1, out[len(out)-1].StepOrder)
	})
}

func TestRemove(t *testing.T) {
	steps := Instantiate(blueprint("A", "B", "C"))

	t.Run("removing current promotes next", func(t *testing.T) {
		out, err := Remove(steps, steps[0].ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, []models.StepStatus{models.StepCurrent, models.StepLocked}, statuses(out))
		for i, s := range out {
			assert.Equal(t, i, s.StepOrder)
		}
	})

	t.Run("removing locked step keeps pointer", func(t *testing.T) {
		out, err := Remove(steps, steps[1].ID)
		require.NoError(t, err)
		assert.Equal(t, []models.StepStatus{models.StepCurrent, models.StepLocked}, statuses(out))
	})

	t.Run("removing last current leaves none", func(t *testing.T) {
		two := Instantiate(blueprint("A", "B"))
		done, err := Apply(two, two[0].ID, Update{Complete: true})
		require.NoError(t, err)

		out, err := Remove(done, done[1].ID)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, models.StepCompleted, out[0].Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := Remove(steps, "missing")
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestTemplateStepEdits(t *testing.T) {
	steps := blueprint("A", "B", "C")

	t.Run("append without position", func(t *testing.T) {
		out := InsertTemplateStep(steps, "D", 5, nil)
		require.Len(t, out, 4)
		assert.Equal(t, "D", out[3].Label)
		assert.Equal(t, 3, out[3].StepOrder)
	})

	t.Run("positional insert", func(t *testing.T) {
		pos := 1
		out := InsertTemplateStep(steps, "New", 5, &pos)
		labels := make([]string, len(out))
		for i, s := range out {
			labels[i] = s.Label
			assert.Equal(t, i, s.StepOrder)
		}
		assert.Equal(t, []string{"A", "New", "B", "C"}, labels)
	})

	t.Run("remove reindexes", func(t *testing.T) {
		out, err := RemoveTemplateStep(steps, steps[1].ID)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "C", out[1].Label)
		assert.Equal(t, 1, out[1].StepOrder)
	})

	t.Run("remove unknown", func(t *testing.T) {
		_, err := RemoveTemplateStep(steps, "missing")
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		steps   []models.Step
		wantErr bool
	}{
		{
			name:  "valid",
			steps: Instantiate(blueprint("A", "B")),
		},
		{
			name: "duplicate order",
			steps: []models.Step{
				{ID: "1", StepOrder: 0, Status: models.StepCurrent},
				{ID: "2", StepOrder: 0, Status: models.StepLocked},
			},
			wantErr: true,
		},
		{
			name: "gap in orders",
			steps: []models.Step{
				{ID: "1", StepOrder: 0, Status: models.StepCurrent},
				{ID: "2", StepOrder: 2, Status: models.StepLocked},
			},
			wantErr: true,
		},
		{
			name: "two current",
			steps: []models.Step{
				{ID: "1", StepOrder: 0, Status: models.StepCurrent},
				{ID: "2", StepOrder: 1, Status: models.StepCurrent},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.steps)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
