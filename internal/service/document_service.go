package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/events"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/metrics"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
)

// DocumentService manages uploaded-file metadata per case. Clients may attach
// documents to their own cases; admins to any case.
type DocumentService struct {
	repo      repository.Repository
	publisher events.Publisher
}

func NewDocumentService(repo repository.Repository, publisher events.Publisher) *DocumentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &DocumentService{repo: repo, publisher: publisher}
}

func (s *DocumentService) AddDocument(ctx context.Context, actor Actor, caseID string, req *models.CreateDocumentRequest) (*models.Document, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: document name is required", ErrValidation)
	}

	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && c.ClientID != actor.ID {
		return nil, repository.ErrCaseNotFound
	}

	id, _ := uuid.NewV7()
	d := &models.Document{
		ID:           id.String(),
		CaseID:       caseID,
		Name:         name,
		UploadedBy:   actor.ID,
		UploaderRole: actor.Role,
		SizeBytes:    req.SizeBytes,
		URL:          req.URL,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.CreateDocument(ctx, d); err != nil {
		return nil, err
	}

	metrics.DocumentsUploadedTotal.Inc()
	s.publisher.Publish(ctx, events.SubjectDocumentAdded, events.NewCaseEvent(c, name))
	return d, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, actor Actor, caseID string) ([]*models.Document, error) {
	c, err := s.repo.GetCaseByID(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && c.ClientID != actor.ID {
		return nil, repository.ErrCaseNotFound
	}
	return s.repo.ListDocumentsByCase(ctx, caseID)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, actor Actor, id string) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return s.repo.DeleteDocument(ctx, id)
}
