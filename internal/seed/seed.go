// Package seed loads the firm's standard case templates into the repository
// and can generate demo data for development environments.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
)

//go:embed templates.yaml
var templatesYAML []byte

type templateFile struct {
	Templates []templateDef `yaml:"templates"`
}

type templateDef struct {
	Label  string    `yaml:"label"`
	Family string    `yaml:"family"`
	Venue  string    `yaml:"venue"`
	Steps  []stepDef `yaml:"steps"`
}

type stepDef struct {
	Label            string `yaml:"label"`
	ExpectedDuration int    `yaml:"expected_duration"`
}

// Templates installs the five standard templates. Seeding is idempotent:
// a template whose label is already on file is skipped, so re-running the
// seed command never duplicates or overwrites anything.
func Templates(ctx context.Context, repo repository.Repository) error {
	var file templateFile
	if err := yaml.Unmarshal(templatesYAML, &file); err != nil {
		return fmt.Errorf("failed to parse template seed: %w", err)
	}

	existing, err := repo.ListTemplates(ctx)
	if err != nil {
		return err
	}
	byLabel := make(map[string]bool, len(existing))
	for _, t := range existing {
		byLabel[t.Label] = true
	}

	seeded := 0
	for _, def := range file.Templates {
		if byLabel[def.Label] {
			continue
		}

		id, _ := uuid.NewV7()
		tmpl := &models.CaseTemplate{
			ID:       id.String(),
			Label:    def.Label,
			Family:   models.DomainFamily(def.Family),
			Venue:    models.Venue(def.Venue),
			IsSystem: true,
			Steps:    make([]models.TemplateStep, 0, len(def.Steps)),
		}
		for i, s := range def.Steps {
			stepID, _ := uuid.NewV7()
			tmpl.Steps = append(tmpl.Steps, models.TemplateStep{
				ID:               stepID.String(),
				Label:            s.Label,
				ExpectedDuration: s.ExpectedDuration,
				StepOrder:        i,
			})
		}

		if err := repo.CreateTemplate(ctx, tmpl); err != nil {
			return fmt.Errorf("failed to seed template %q: %w", def.Label, err)
		}
		seeded++
	}

	slog.InfoContext(ctx, "template seed complete", "installed", seeded, "skipped", len(file.Templates)-seeded)
	return nil
}
