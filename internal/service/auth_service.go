package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/metrics"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/repository"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/sessions"
	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/pkg/tokens"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not allowed for this role")
	ErrValidation         = errors.New("invalid request")
)

// adminNames is the allowlist of staff names. Registering under one of these
// names grants the ADMIN role; everyone else becomes a CLIENT.
var adminNames = []string{
	"Michel Felix",
	"Luana Castro",
	"Fabrícia Sousa",
}

// AuthService handles login, registration and user management.
type AuthService struct {
	repo     repository.Repository
	tokenGen *tokens.TokenGenerator
	store    sessions.Store
}

func NewAuthService(repo repository.Repository, tokenGen *tokens.TokenGenerator, store sessions.Store) *AuthService {
	return &AuthService{repo: repo, tokenGen: tokenGen, store: store}
}

// Login authenticates by name + PIN. Lookup is case-insensitive on the name;
// archived accounts are rejected with the same error as a bad PIN.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.repo.GetUserByName(ctx, strings.TrimSpace(req.Name))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PINHash), []byte(req.PIN)); err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return resp, nil
}

// Register self-registers a user. Names on the staff allowlist become ADMIN;
// everyone else is a CLIENT.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(req.PIN) < 4 {
		return nil, fmt.Errorf("%w: pin must have at least 4 digits", ErrValidation)
	}

	role := models.RoleClient
	for _, admin := range adminNames {
		if strings.EqualFold(name, admin) {
			role = models.RoleAdmin
			break
		}
	}

	user, err := s.createUser(ctx, name, req.PIN, role, "", "")
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token is revoked (rotation).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	userID, err := s.store.Resolve(ctx, refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil || !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if err := s.store.Revoke(ctx, refreshToken); err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token. Unknown tokens are not an error.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	err := s.store.Revoke(ctx, refreshToken)
	if errors.Is(err, sessions.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.LoginResponse, error) {
	access, err := s.tokenGen.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.tokenGen.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	if err := s.store.Save(ctx, refresh, user.ID, s.tokenGen.RefreshTTL()); err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    15 * 60,
		TokenType:    "Bearer",
		User:         user,
	}, nil
}

// CreateUser is the staff-side creation path; only admins may call it.
func (s *AuthService) CreateUser(ctx context.Context, actorRole models.Role, req *models.CreateUserRequest) (*models.User, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(req.PIN) < 4 {
		return nil, fmt.Errorf("%w: pin must have at least 4 digits", ErrValidation)
	}
	role := req.Role
	if role == "" {
		role = models.RoleClient
	}
	if role != models.RoleAdmin && role != models.RoleClient {
		return nil, fmt.Errorf("%w: invalid role: %s", ErrValidation, role)
	}

	return s.createUser(ctx, name, req.PIN, role, req.Email, req.WhatsApp)
}

func (s *AuthService) createUser(ctx context.Context, name, pin string, role models.Role, email, whatsapp string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash pin: %w", err)
	}

	id, _ := uuid.NewV7()
	user := &models.User{
		ID:        id.String(),
		Name:      name,
		Role:      role,
		PINHash:   string(hash),
		Email:     email,
		WhatsApp:  whatsapp,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *AuthService) ListClients(ctx context.Context, actorRole models.Role) ([]*models.User, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.ListClients(ctx)
}

// UpdateUser applies the non-nil fields. Archiving an account also drops all
// of its refresh sessions.
func (s *AuthService) UpdateUser(ctx context.Context, actorRole models.Role, id string, req *models.UpdateUserRequest) (*models.User, error) {
	if actorRole != models.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.PIN != nil && *req.PIN != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash pin: %w", err)
		}
		user.PINHash = string(hash)
	}
	if req.Role != nil {
		if *req.Role != models.RoleAdmin && *req.Role != models.RoleClient {
			return nil, fmt.Errorf("%w: invalid role: %s", ErrValidation, *req.Role)
		}
		user.Role = *req.Role
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.WhatsApp != nil {
		user.WhatsApp = *req.WhatsApp
	}
	if req.Archived != nil {
		user.Archived = *req.Archived
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	if user.Archived {
		if err := s.store.RevokeAll(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, actorRole models.Role, id string) error {
	if actorRole != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	return s.store.RevokeAll(ctx, id)
}
