package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// InMemoryRepository keeps everything in process memory. It backs local
// development, the seed command's dry runs, and most of the test suite.
// Values are copied on the way in and out so callers never share step slices
// with the store.
type InMemoryRepository struct {
	users     map[string]*models.User
	templates map[string]*models.CaseTemplate
	cases     map[string]*models.LegalCase
	documents map[string]*models.Document
	mu        sync.RWMutex
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:     make(map[string]*models.User),
		templates: make(map[string]*models.CaseTemplate),
		cases:     make(map[string]*models.LegalCase),
		documents: make(map[string]*models.Document),
	}
}

func (r *InMemoryRepository) CreateUser(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Name, u.Name) {
			return ErrUserExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *InMemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Name, name) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sortUsersByName(out)
	return out, nil
}

func (r *InMemoryRepository) ListClients(ctx context.Context) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0)
	for _, u := range r.users {
		if u.Role == models.RoleClient {
			cp := *u
			out = append(out, &cp)
		}
	}
	sortUsersByName(out)
	return out, nil
}

func (r *InMemoryRepository) UpdateUser(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return ErrUserNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *InMemoryRepository) DeleteUser(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *InMemoryRepository) CreateTemplate(ctx context.Context, t *models.CaseTemplate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[t.ID] = copyTemplate(t)
	return nil
}

func (r *InMemoryRepository) GetTemplateByID(ctx context.Context, id string) (*models.CaseTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return copyTemplate(t), nil
}

func (r *InMemoryRepository) ListTemplates(ctx context.Context) ([]*models.CaseTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.CaseTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, copyTemplate(t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r *InMemoryRepository) DeleteTemplate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(r.templates, id)
	return nil
}

func (r *InMemoryRepository) ReplaceTemplateSteps(ctx context.Context, templateID string, steps []models.TemplateStep) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[templateID]
	if !ok {
		return ErrTemplateNotFound
	}
	t.Steps = make([]models.TemplateStep, len(steps))
	copy(t.Steps, steps)
	return nil
}

func (r *InMemoryRepository) CreateCase(ctx context.Context, c *models.LegalCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cases[c.ID] = copyCase(c)
	return nil
}

func (r *InMemoryRepository) GetCaseByID(ctx context.Context, id string) (*models.LegalCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cases[id]
	if !ok {
		return nil, ErrCaseNotFound
	}
	return copyCase(c), nil
}

func (r *InMemoryRepository) GetCaseByStepID(ctx context.Context, stepID string) (*models.LegalCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.cases {
		for i := range c.Steps {
			if c.Steps[i].ID == stepID {
				return copyCase(c), nil
			}
		}
	}
	return nil, ErrStepNotFound
}

func (r *InMemoryRepository) ListCases(ctx context.Context) ([]*models.LegalCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.LegalCase, 0, len(r.cases))
	for _, c := range r.cases {
		out = append(out, copyCase(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *InMemoryRepository) ListCasesByClient(ctx context.Context, clientID string) ([]*models.LegalCase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.LegalCase, 0)
	for _, c := range r.cases {
		if c.ClientID == clientID {
			out = append(out, copyCase(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *InMemoryRepository) UpdateCaseStatus(ctx context.Context, caseID string, status models.CaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[caseID]
	if !ok {
		return ErrCaseNotFound
	}
	c.Status = status
	return nil
}

func (r *InMemoryRepository) UpdateCaseTitle(ctx context.Context, caseID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[caseID]
	if !ok {
		return ErrCaseNotFound
	}
	c.Title = title
	return nil
}

func (r *InMemoryRepository) DeleteCase(ctx context.Context, caseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cases[caseID]; !ok {
		return ErrCaseNotFound
	}
	delete(r.cases, caseID)
	return nil
}

func (r *InMemoryRepository) ReplaceCaseSteps(ctx context.Context, caseID string, steps []models.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.cases[caseID]
	if !ok {
		return ErrCaseNotFound
	}
	c.Steps = make([]models.Step, len(steps))
	copy(c.Steps, steps)
	return nil
}

func (r *InMemoryRepository) CreateDocument(ctx context.Context, d *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *d
	r.documents[d.ID] = &cp
	return nil
}

func (r *InMemoryRepository) ListDocumentsByCase(ctx context.Context, caseID string) ([]*models.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Document, 0)
	for _, d := range r.documents {
		if d.CaseID == caseID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *InMemoryRepository) DeleteDocument(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.documents[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(r.documents, id)
	return nil
}

func (r *InMemoryRepository) Close() error {
	return nil
}

func copyTemplate(t *models.CaseTemplate) *models.CaseTemplate {
	cp := *t
	cp.Steps = make([]models.TemplateStep, len(t.Steps))
	copy(cp.Steps, t.Steps)
	return &cp
}

func copyCase(c *models.LegalCase) *models.LegalCase {
	cp := *c
	cp.Steps = make([]models.Step, len(c.Steps))
	copy(cp.Steps, c.Steps)
	if c.BenefitType != nil {
		bt := *c.BenefitType
		cp.BenefitType = &bt
	}
	return &cp
}

func sortUsersByName(users []*models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
}
