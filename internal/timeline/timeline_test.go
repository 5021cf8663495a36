package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completed(id, label string, order int, when time.Time) models.Step {
	return models.Step{ID: id, Label: label, Status: models.StepCompleted, StepOrder: order, CompletedDate: &when}
}

func benefitsCase(benefit *models.BenefitType, start time.Time, steps ...models.Step) *models.LegalCase {
	return &models.LegalCase{
		ID:          "case-1",
		Family:      models.FamilyBenefits,
		Venue:       models.VenueAdministrative,
		BenefitType: benefit,
		StartDate:   start,
		Status:      models.CaseActive,
		Steps:       steps,
	}
}

func TestElapsedDays(t *testing.T) {
	from := date(2024, 1, 1)
	assert.Equal(t, 0, ElapsedDays(from, from))
	assert.Equal(t, 0, ElapsedDays(from, from.Add(23*time.Hour)))
	assert.Equal(t, 1, ElapsedDays(from, from.Add(25*time.Hour)))
	assert.Equal(t, 31, ElapsedDays(from, date(2024, 2, 1)))
}

func TestCurrentProgress(t *testing.T) {
	start := date(2024, 1, 1)
	now := date(2024, 1, 20)

	t.Run("first step counts from case start", func(t *testing.T) {
		c := benefitsCase(nil, start,
			models.Step{ID: "s1", Label: "Entrada", Status: models.StepCurrent, StepOrder: 0, ExpectedDuration: 30},
		)
		p, ok := CurrentProgress(c, now)
		require.True(t, ok)
		assert.Equal(t, "s1", p.StepID)
		assert.Equal(t, 19, p.ElapsedDays)
		assert.False(t, p.Delayed)
	})

	t.Run("later step counts from previous completion", func(t *testing.T) {
		c := benefitsCase(nil, start,
			completed("s1", "Entrada", 0, date(2024, 1, 10)),
			models.Step{ID: "s2", Label: "Análise", Status: models.StepCurrent, StepOrder: 1, ExpectedDuration: 5},
		)
		p, ok := CurrentProgress(c, now)
		require.True(t, ok)
		assert.Equal(t, "s2", p.StepID)
		assert.Equal(t, 10, p.ElapsedDays)
		assert.True(t, p.Delayed)
	})

	t.Run("zero expected duration never delays", func(t *testing.T) {
		c := benefitsCase(nil, start,
			models.Step{ID: "s1", Label: "Envio", Status: models.StepCurrent, StepOrder: 0, ExpectedDuration: 0},
		)
		p, ok := CurrentProgress(c, date(2025, 1, 1))
		require.True(t, ok)
		assert.False(t, p.Delayed)
	})

	t.Run("no current step", func(t *testing.T) {
		c := benefitsCase(nil, start, completed("s1", "Entrada", 0, date(2024, 1, 10)))
		_, ok := CurrentProgress(c, now)
		assert.False(t, ok)
	})

	t.Run("previous step missing completion date", func(t *testing.T) {
		c := benefitsCase(nil, start,
			models.Step{ID: "s1", Label: "Entrada", Status: models.StepCompleted, StepOrder: 0},
			models.Step{ID: "s2", Label: "Análise", Status: models.StepCurrent, StepOrder: 1},
		)
		_, ok := CurrentProgress(c, now)
		assert.False(t, ok)
	})
}

func TestStatutoryAlert_Scope(t *testing.T) {
	now := date(2024, 7, 1)

	t.Run("labor case has no statutory deadline", func(t *testing.T) {
		c := benefitsCase(nil, date(2024, 1, 1))
		c.Family = models.FamilyLabor
		assert.Nil(t, StatutoryAlert(c, now))
	})

	t.Run("judicial venue has no statutory deadline", func(t *testing.T) {
		c := benefitsCase(nil, date(2024, 1, 1))
		c.Venue = models.VenueJudicial
		assert.Nil(t, StatutoryAlert(c, now))
	})
}

func TestStatutoryAlert_ExamBenefit(t *testing.T) {
	benefit := models.AuxilioDoenca
	now := date(2024, 7, 1)

	t.Run("counts from the last exam by step order", func(t *testing.T) {
		c := benefitsCase(&benefit, date(2023, 10, 1),
			completed("s1", "Entrada / Protocolo", 0, date(2024, 1, 1)),
			completed("s2", "Perícia Médica", 1, date(2024, 2, 1)),
			completed("s3", "Avaliação Social", 2, date(2024, 3, 1)),
			models.Step{ID: "s4", Label: "Conclusão", Status: models.StepCurrent, StepOrder: 3},
		)

		alert := StatutoryAlert(c, now)
		require.NotNil(t, alert)
		assert.Equal(t, BasisLastExam, alert.Basis)
		assert.Equal(t, date(2024, 3, 1), alert.ReferenceDate)
		assert.Equal(t, 122, alert.ElapsedDays)
		assert.True(t, alert.Fires)
	})

	t.Run("later exam wins even when back-dated", func(t *testing.T) {
		c := benefitsCase(&benefit, date(2023, 10, 1),
			completed("s1", "Perícia Médica", 0, date(2024, 3, 1)),
			completed("s2", "Nova Perícia", 1, date(2024, 2, 1)),
		)

		alert := StatutoryAlert(c, now)
		require.NotNil(t, alert)
		assert.Equal(t, date(2024, 2, 1), alert.ReferenceDate)
	})

	t.Run("falls back to filing when no exam completed", func(t *testing.T) {
		c := benefitsCase(&benefit, date(2023, 10, 1),
			completed("s1", "Entrada / Protocolo", 0, date(2024, 5, 1)),
			models.Step{ID: "s2", Label: "Perícia Médica", Status: models.StepCurrent, StepOrder: 1},
		)

		alert := StatutoryAlert(c, now)
		require.NotNil(t, alert)
		assert.Equal(t, BasisFiling, alert.Basis)
		assert.Equal(t, 61, alert.ElapsedDays)
		assert.False(t, alert.Fires)
	})

	t.Run("falls back to case start when nothing completed", func(t *testing.T) {
		c := benefitsCase(&benefit, date(2024, 1, 1),
			models.Step{ID: "s1", Label: "Entrada / Protocolo", Status: models.StepCurrent, StepOrder: 0},
		)

		alert := StatutoryAlert(c, now)
		require.NotNil(t, alert)
		assert.Equal(t, BasisCaseStart, alert.Basis)
		assert.True(t, alert.Fires)
	})
}

func TestStatutoryAlert_NonExamBenefit(t *testing.T) {
	benefit := models.AposentadoriaIdade

	t.Run("counts from filing, ignores exams", func(t *testing.T) {
		c := benefitsCase(&benefit, date(2023, 10, 1),
			completed("s1", "Entrada / Protocolo", 0, date(2024, 1, 1)),
			completed("s2", "Perícia Médica", 1, date(2024, 6, 1)),
		)

		alert := StatutoryAlert(c, date(2024, 7, 1))
		require.NotNil(t, alert)
		assert.Equal(t, BasisFiling, alert.Basis)
		assert.Equal(t, date(2024, 1, 1), alert.ReferenceDate)
		assert.True(t, alert.Fires)
	})
}

func TestStatutoryAlert_NoBenefitType(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		now   time.Time
		fires bool
	}{
		{"past the deadline", date(2024, 1, 1), date(2024, 5, 1), true},
		{"within the deadline", date(2024, 2, 1), date(2024, 5, 1), false},
		{"exactly at the boundary", date(2024, 1, 1), date(2024, 3, 31), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := benefitsCase(nil, tt.start,
				completed("s1", "Entrada / Protocolo", 0, tt.start.AddDate(0, 0, 5)),
			)
			alert := StatutoryAlert(c, tt.now)
			require.NotNil(t, alert)
			assert.Equal(t, BasisCaseStart, alert.Basis, "no benefit type always counts from case start")
			assert.Equal(t, tt.fires, alert.Fires)
		})
	}
}

func TestIsDocumentationStep(t *testing.T) {
	assert.True(t, IsDocumentationStep(&models.Step{Label: "Envio da Documentação"}))
	assert.True(t, IsDocumentationStep(&models.Step{Label: "Análise e Documentação"}))
	assert.False(t, IsDocumentationStep(&models.Step{Label: "Perícia Médica"}))
	assert.False(t, IsDocumentationStep(&models.Step{Label: "Sentença"}))
}
