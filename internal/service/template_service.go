package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/progression"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
)

// ErrSystemTemplate means a delete targeted one of the seeded firm templates.
var ErrSystemTemplate = errors.New("system templates cannot be deleted")

// TemplateService manages case templates and their step blueprints.
// All mutations are admin-only; clients never see templates directly.
type TemplateService struct {
	repo repository.Repository
}

func NewTemplateService(repo repository.Repository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]*models.CaseTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*models.CaseTemplate, error) {
	return s.repo.GetTemplateByID(ctx, id)
}

// CreateTemplate creates an empty, non-system template. Family defaults to
// GENERIC and venue to ADMINISTRATIVE when the request leaves them blank.
func (s *TemplateService) CreateTemplate(ctx context.Context, actorRole models.Role, req *models.CreateTemplateRequest) (*models.CaseTemplate, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}

	family := req.Family
	if family == "" {
		family = models.FamilyGeneric
	}
	if family != models.FamilyGeneric && family != models.FamilyBenefits && family != models.FamilyLabor {
		return nil, fmt.Errorf("%w: invalid family: %s", ErrValidation, family)
	}

	venue := req.Venue
	if venue == "" {
		venue = models.VenueAdministrative
	}
	if venue != models.VenueAdministrative && venue != models.VenueJudicial {
		return nil, fmt.Errorf("%w: invalid venue: %s", ErrValidation, venue)
	}

	id, _ := uuid.NewV7()
	t := &models.CaseTemplate{
		ID:       id.String(),
		Label:    label,
		Family:   family,
		Venue:    venue,
		IsSystem: false,
		Steps:    []models.TemplateStep{},
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTemplate removes a custom template. The five seeded firm templates
// are refused; existing cases are unaffected either way since they hold their
// own step copies.
func (s *TemplateService) DeleteTemplate(ctx context.Context, actorRole models.Role, id string) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}

	t, err := s.repo.GetTemplateByID(ctx, id)
	if err != nil {
		return err
	}
	if t.IsSystem {
		return ErrSystemTemplate
	}

	return s.repo.DeleteTemplate(ctx, id)
}

// AddStep appends a step to the template, or inserts it at req.Position,
// shifting later steps. Orders stay contiguous from zero.
func (s *TemplateService) AddStep(ctx context.Context, actorRole models.Role, templateID string, req *models.AddTemplateStepRequest) (*models.CaseTemplate, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}

	t, err := s.repo.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	t.Steps = progression.InsertTemplateStep(t.Steps, label, req.ExpectedDuration, req.Position)
	if err := s.repo.ReplaceTemplateSteps(ctx, templateID, t.Steps); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteStep removes a blueprint step and closes the order gap.
func (s *TemplateService) DeleteStep(ctx context.Context, actorRole models.Role, templateID, stepID string) (*models.CaseTemplate, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	t, err := s.repo.GetTemplateByID(ctx, templateID)
	if err != nil {
		return nil, err
	}

	steps, err := progression.RemoveTemplateStep(t.Steps, stepID)
	if err != nil {
		return nil, repository.ErrStepNotFound
	}

	t.Steps = steps
	if err := s.repo.ReplaceTemplateSteps(ctx, templateID, t.Steps); err != nil {
		return nil, err
	}
	return t, nil
}
