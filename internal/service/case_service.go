package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/benefits"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/events"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/metrics"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/progression"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/timeline"
)

// Actor identifies who is calling a service method. Role capability is
// enforced here, not in the handlers.
type Actor struct {
	ID   string
	Role models.Role
}

// CaseService owns case lifecycle, step progression and the timeline view.
type CaseService struct {
	repo      repository.Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewCaseService(repo repository.Repository, publisher events.Publisher) *CaseService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CaseService{repo: repo, publisher: publisher, now: time.Now}
}

// AddCase opens a case for a client by snapshotting the template's steps.
// The first step starts CURRENT, the rest LOCKED. The case owns its step
// copies; later template edits never reach it.
func (s *CaseService) AddCase(ctx context.Context, actor Actor, req *models.CreateCaseRequest) (*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	client, err := s.repo.GetUserByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.repo.GetTemplateByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	if req.BenefitType != nil && !benefits.IsValid(*req.BenefitType) {
		return nil, fmt.Errorf("%w: invalid benefit type: %s", ErrValidation, *req.BenefitType)
	}
	if tmpl.Family != models.FamilyBenefits && req.BenefitType != nil {
		return nil, fmt.Errorf("%w: benefit type only applies to social-security cases", ErrValidation)
	}

	id, _ := uuid.NewV7()
	c := &models.LegalCase{
		ID:                id.String(),
		ClientID:          client.ID,
		ClientName:        client.Name,
		TemplateID:        tmpl.ID,
		Family:            tmpl.Family,
		Venue:             tmpl.Venue,
		BenefitType:       req.BenefitType,
		Title:             title,
		ResponsibleLawyer: strings.TrimSpace(req.ResponsibleLawyer),
		StartDate:         s.now(),
		Status:            models.CaseActive,
		Steps:             progression.Instantiate(tmpl.Steps),
	}

	if err := s.repo.CreateCase(ctx, c); err != nil {
		return nil, err
	}

	metrics.CasesCreatedTotal.Inc()
	s.publisher.Publish(ctx, events.SubjectCaseCreated, events.NewCaseEvent(c, ""))
	return c, nil
}

// GetCase returns a case. Clients may only read their own cases.
func (s *CaseService) GetCase(ctx context.Context, actor Actor, id string) (*models.LegalCase, error) {
	c, err := s.repo.GetCaseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && c.ClientID != actor.ID {
		return nil, repository.ErrCaseNotFound
	}
	return s.withClientName(ctx, c), nil
}

// ListCases returns every case for admins, or the caller's own cases for
// clients.
func (s *CaseService) ListCases(ctx context.Context, actor Actor) ([]*models.LegalCase, error) {
	var (
		cases []*models.LegalCase
		err   error
	)
	if actor.Role == models.RoleAdmin {
		cases, err = s.repo.ListCases(ctx)
	} else {
		cases, err = s.repo.ListCasesByClient(ctx, actor.ID)
	}
	if err != nil {
		return nil, err
	}

	for _, c := range cases {
		s.withClientName(ctx, c)
	}
	return cases, nil
}

func (s *CaseService) ListCasesByClient(ctx context.Context, actor Actor, clientID string) ([]*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin && actor.ID != clientID {
		return nil, ErrForbidden
	}
	cases, err := s.repo.ListCasesByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		s.withClientName(ctx, c)
	}
	return cases, nil
}

func (s *CaseService) UpdateCaseTitle(ctx context.Context, actor Actor, id, title string) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	return s.repo.UpdateCaseTitle(ctx, id, title)
}

func (s *CaseService) UpdateCaseStatus(ctx context.Context, actor Actor, id string, status models.CaseStatus) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	switch status {
	case models.CaseActive, models.CaseConcluded, models.CaseMovedToJudicial:
	default:
		return fmt.Errorf("%w: invalid status: %s", ErrValidation, status)
	}

	if err := s.repo.UpdateCaseStatus(ctx, id, status); err != nil {
		return err
	}

	if status == models.CaseConcluded {
		if c, err := s.repo.GetCaseByID(ctx, id); err == nil {
			s.publisher.Publish(ctx, events.SubjectCaseConcluded, events.NewCaseEvent(c, ""))
		}
	}
	return nil
}

func (s *CaseService) DeleteCase(ctx context.Context, actor Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.DeleteCase(ctx, id)
}

// UpdateStep mutates one step of a case. COMMENT_ONLY and UPDATE_LABEL leave
// progression untouched; COMPLETE marks the step done and, when it held the
// CURRENT pointer, promotes the next step by order. Completing the last step
// leaves no CURRENT step and the case stays ACTIVE.
func (s *CaseService) UpdateStep(ctx context.Context, actor Actor, caseID, stepID string, req *models.UpdateStepRequest) (*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	upd := progression.Update{
		Comment: req.Comment,
	}

	switch req.Action {
	case models.ActionCommentOnly:
	case models.ActionUpdateLabel:
		upd.Label = req.NewLabel
		upd.Duration = req.NewDuration
	case models.ActionComplete:
		upd.Complete = true
		upd.Label = req.NewLabel
		upd.Duration = req.NewDuration
		if req.CompletionDate != nil && *req.CompletionDate != "" {
			completed, err := time.Parse("2006-01-02", *req.CompletionDate)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid completion date %q: %v", ErrValidation, *req.CompletionDate, err)
			}
			upd.CompletedAt = completed
		} else {
			upd.CompletedAt = s.now()
		}
	default:
		return nil, fmt.Errorf("%w: invalid action: %s", ErrValidation, req.Action)
	}

	steps, err := progression.Apply(c.Steps, stepID, upd)
	if err != nil {
		return nil, repository.ErrStepNotFound
	}

	if err := s.repo.ReplaceCaseSteps(ctx, caseID, steps); err != nil {
		return nil, err
	}
	c.Steps = steps

	if req.Action == models.ActionComplete {
		metrics.StepsCompletedTotal.Inc()
		if step := c.StepByID(stepID); step != nil {
			s.publisher.Publish(ctx, events.SubjectStepCompleted, events.NewCaseEvent(c, step.Label))
		}
	}

	return c, nil
}

// AddStep inserts a new LOCKED step at the given position in a live case.
func (s *CaseService) AddStep(ctx context.Context, actor Actor, caseID string, req *models.AddStepRequest) (*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, fmt.Errorf("%w: label is required", ErrValidation)
	}

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}

	steps := progression.Insert(c.Steps, label, req.Position, req.ExpectedDuration)
	if err := s.repo.ReplaceCaseSteps(ctx, caseID, steps); err != nil {
		return nil, err
	}
	c.Steps = steps
	return c, nil
}

// DeleteStep removes a step and closes the order gap. When the removed step
// held the CURRENT pointer the next surviving step is promoted.
func (s *CaseService) DeleteStep(ctx context.Context, actor Actor, stepID string) (*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	c, err := s.repo.GetCaseByStepID(ctx, stepID)
	if err != nil {
		return nil, err
	}

	steps, err := progression.Remove(c.Steps, stepID)
	if err != nil {
		return nil, repository.ErrStepNotFound
	}

	if err := s.repo.ReplaceCaseSteps(ctx, c.ID, steps); err != nil {
		return nil, err
	}
	c.Steps = steps
	return c, nil
}

// CaseTimeline is the read model served to the progress screen.
type CaseTimeline struct {
	CaseID   string                  `json:"case_id"`
	Steps    []models.Step           `json:"steps"`
	Progress *timeline.Progress      `json:"progress,omitempty"`
	Alert    *timeline.DeadlineAlert `json:"statutory_alert,omitempty"`
}

// Timeline computes elapsed days for the CURRENT step and, for benefits
// cases progressing administratively, the 90-day mandado de segurança alert.
func (s *CaseService) Timeline(ctx context.Context, actor Actor, caseID string) (*CaseTimeline, error) {
	c, err := s.GetCase(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	tl := &CaseTimeline{
		CaseID: c.ID,
		Steps:  c.Steps,
		Alert:  timeline.StatutoryAlert(c, now),
	}
	if progress, ok := timeline.CurrentProgress(c, now); ok {
		tl.Progress = &progress
	}
	return tl, nil
}

// TransformToJudicial closes an administrative case and opens a fresh
// judicial one for the same client. Template preference: the system judicial
// template of the case's family, then the generic judicial template, then
// the first template on file. The new case starts from scratch with the
// title prefixed "Judicial: ".
func (s *CaseService) TransformToJudicial(ctx context.Context, actor Actor, caseID string) (*models.LegalCase, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	oldCase, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if oldCase.Venue != models.VenueAdministrative {
		return nil, fmt.Errorf("%w: case is already judicial", ErrValidation)
	}
	if oldCase.Status != models.CaseActive {
		return nil, fmt.Errorf("%w: only active cases can be transformed", ErrValidation)
	}

	tmpl, err := s.pickJudicialTemplate(ctx, oldCase.Family)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCaseStatus(ctx, oldCase.ID, models.CaseMovedToJudicial); err != nil {
		return nil, err
	}

	id, _ := uuid.NewV7()
	newCase := &models.LegalCase{
		ID:                id.String(),
		ClientID:          oldCase.ClientID,
		ClientName:        oldCase.ClientName,
		TemplateID:        tmpl.ID,
		Family:            tmpl.Family,
		Venue:             models.VenueJudicial,
		BenefitType:       oldCase.BenefitType,
		Title:             "Judicial: " + oldCase.Title,
		ResponsibleLawyer: oldCase.ResponsibleLawyer,
		StartDate:         s.now(),
		Status:            models.CaseActive,
		Steps:             progression.Instantiate(tmpl.Steps),
	}

	if err := s.repo.CreateCase(ctx, newCase); err != nil {
		return nil, err
	}

	metrics.CasesTransformedTotal.Inc()
	s.publisher.Publish(ctx, events.SubjectCaseTransformed, events.NewCaseEvent(newCase, ""))
	return s.withClientName(ctx, newCase), nil
}

func (s *CaseService) pickJudicialTemplate(ctx context.Context, family models.DomainFamily) (*models.CaseTemplate, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates available")
	}

	for _, t := range templates {
		if t.IsSystem && t.Venue == models.VenueJudicial && t.Family == family {
			return t, nil
		}
	}
	for _, t := range templates {
		if t.IsSystem && t.Venue == models.VenueJudicial && t.Family == models.FamilyGeneric {
			return t, nil
		}
	}
	return templates[0], nil
}

// withClientName resolves the client's display name onto the case. Missing
// users (deleted clients) leave the stored name untouched.
func (s *CaseService) withClientName(ctx context.Context, c *models.LegalCase) *models.LegalCase {
	if u, err := s.repo.GetUserByID(ctx, c.ClientID); err == nil {
		c.ClientName = u.Name
	}
	return c
}
