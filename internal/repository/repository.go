package repository

import (
	"context"
	"errors"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrTemplateNotFound = errors.New("template not found")
	ErrCaseNotFound     = errors.New("case not found")
	ErrStepNotFound     = errors.New("step not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// Repository defines persistence for users, templates, cases and documents.
// Two implementations exist: an in-memory store for development and tests,
// and a PostgreSQL store for production. The backend is selected once at
// startup; nothing else in the portal knows which one it is talking to.
type Repository interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByName(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListClients(ctx context.Context) ([]*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id string) error

	// Templates
	CreateTemplate(ctx context.Context, t *models.CaseTemplate) error
	GetTemplateByID(ctx context.Context, id string) (*models.CaseTemplate, error)
	ListTemplates(ctx context.Context) ([]*models.CaseTemplate, error)
	DeleteTemplate(ctx context.Context, id string) error
	// ReplaceTemplateSteps swaps a template's whole step list atomically;
	// the progression engine precomputes the re-indexed list.
	ReplaceTemplateSteps(ctx context.Context, templateID string, steps []models.TemplateStep) error

	// Cases
	CreateCase(ctx context.Context, c *models.LegalCase) error
	GetCaseByID(ctx context.Context, id string) (*models.LegalCase, error)
	GetCaseByStepID(ctx context.Context, stepID string) (*models.LegalCase, error)
	ListCases(ctx context.Context) ([]*models.LegalCase, error)
	ListCasesByClient(ctx context.Context, clientID string) ([]*models.LegalCase, error)
	UpdateCaseStatus(ctx context.Context, caseID string, status models.CaseStatus) error
	UpdateCaseTitle(ctx context.Context, caseID, title string) error
	DeleteCase(ctx context.Context, caseID string) error
	// ReplaceCaseSteps swaps a case's whole step list atomically.
	ReplaceCaseSteps(ctx context.Context, caseID string, steps []models.Step) error

	// Documents
	CreateDocument(ctx context.Context, d *models.Document) error
	ListDocumentsByCase(ctx context.Context, caseID string) ([]*models.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	// Utility
	Close() error
}
