package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// setupTestDatabase creates a PostgreSQL testcontainer and runs migrations
func setupTestDatabase(t *testing.T) (*PostgresRepository, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("portal_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	if err := runMigrations(connStr); err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to run migrations: %v", err)
	}

	repo, err := NewPostgresRepository(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		t.Fatalf("Failed to create repository: %v", err)
	}

	cleanup := func() {
		repo.pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return repo, cleanup
}

func runMigrations(connStr string) error {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	migrationPath := filepath.Join("..", "..", "migrations", "001_init.up.sql")
	migrationSQL, err := os.ReadFile(migrationPath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	if _, err := db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	return nil
}

func seedClient(t *testing.T, repo *PostgresRepository, name string) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Name:      name,
		Role:      models.RoleClient,
		PINHash:   "$2a$10$hash",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestPostgres_Users(t *testing.T) {
	repo, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	u := seedClient(t, repo, "Ana Souza")

	t.Run("duplicate name rejected case-insensitively", func(t *testing.T) {
		dup := &models.User{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      "ANA SOUZA",
			Role:      models.RoleClient,
			CreatedAt: time.Now(),
		}
		assert.ErrorIs(t, repo.CreateUser(ctx, dup), ErrUserExists)
	})

	t.Run("get by name ignores case", func(t *testing.T) {
		got, err := repo.GetUserByName(ctx, "ana souza")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("update and archive", func(t *testing.T) {
		u.Archived = true
		u.WhatsApp = "+55 88 98888-1234"
		require.NoError(t, repo.UpdateUser(ctx, u))

		got, err := repo.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, got.Archived)
		assert.Equal(t, u.WhatsApp, got.WhatsApp)
	})

	t.Run("list clients", func(t *testing.T) {
		admin := &models.User{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Name:      "Luana Castro",
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.CreateUser(ctx, admin))

		clients, err := repo.ListClients(ctx)
		require.NoError(t, err)
		require.Len(t, clients, 1)
		assert.Equal(t, models.RoleClient, clients[0].Role)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteUser(ctx, u.ID))
		assert.ErrorIs(t, repo.DeleteUser(ctx, u.ID), ErrUserNotFound)
	})
}

func TestPostgres_TemplatesRoundTrip(t *testing.T) {
	repo, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	tmpl := &models.CaseTemplate{
		ID:       uuid.Must(uuid.NewV7()).String(),
		Label:    "Benefício Genérico",
		Family:   models.FamilyBenefits,
		Venue:    models.VenueAdministrative,
		IsSystem: true,
		Steps: []models.TemplateStep{
			{ID: uuid.Must(uuid.NewV7()).String(), Label: "Entrada do pedido", ExpectedDuration: 30, StepOrder: 0},
			{ID: uuid.Must(uuid.NewV7()).String(), Label: "Análise documental", ExpectedDuration: 45, StepOrder: 1},
		},
	}
	require.NoError(t, repo.CreateTemplate(ctx, tmpl))

	got, err := repo.GetTemplateByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tmpl.Label, got.Label)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "Entrada do pedido", got.Steps[0].Label)

	t.Run("replace steps", func(t *testing.T) {
		next := append(tmpl.Steps, models.TemplateStep{
			ID: uuid.Must(uuid.NewV7()).String(), Label: "Decisão", ExpectedDuration: 60, StepOrder: 2,
		})
		require.NoError(t, repo.ReplaceTemplateSteps(ctx, tmpl.ID, next))

		got, err := repo.GetTemplateByID(ctx, tmpl.ID)
		require.NoError(t, err)
		require.Len(t, got.Steps, 3)
		assert.Equal(t, "Decisão", got.Steps[2].Label)
	})

	t.Run("replace on missing template", func(t *testing.T) {
		err := repo.ReplaceTemplateSteps(ctx, uuid.Must(uuid.NewV7()).String(), tmpl.Steps)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.DeleteTemplate(ctx, tmpl.ID))
		_, err := repo.GetTemplateByID(ctx, tmpl.ID)
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})
}

func TestPostgres_Cases(t *testing.T) {
	repo, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	client := seedClient(t, repo, "Carlos Lima")

	benefit := models.AuxilioDoenca
	stepID := uuid.Must(uuid.NewV7()).String()
	c := &models.LegalCase{
		ID:                uuid.Must(uuid.NewV7()).String(),
		ClientID:          client.ID,
		ClientName:        client.Name,
		Family:            models.FamilyBenefits,
		Venue:             models.VenueAdministrative,
		BenefitType:       &benefit,
		Title:             "Auxílio-Doença",
		ResponsibleLawyer: "Michel Felix",
		StartDate:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:            models.CaseActive,
		Steps: []models.Step{
			{ID: stepID, Label: "Entrada do pedido", Status: models.StepCurrent, StepOrder: 0, ExpectedDuration: 30},
			{ID: uuid.Must(uuid.NewV7()).String(), Label: "Perícia médica", Status: models.StepLocked, StepOrder: 1, ExpectedDuration: 60},
		},
	}
	require.NoError(t, repo.CreateCase(ctx, c))

	t.Run("round trip preserves benefit and steps", func(t *testing.T) {
		got, err := repo.GetCaseByID(ctx, c.ID)
		require.NoError(t, err)
		require.NotNil(t, got.BenefitType)
		assert.Equal(t, models.AuxilioDoenca, *got.BenefitType)
		require.Len(t, got.Steps, 2)
		assert.Equal(t, models.StepCurrent, got.Steps[0].Status)
	})

	t.Run("lookup by step", func(t *testing.T) {
		got, err := repo.GetCaseByStepID(ctx, stepID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)

		_, err = repo.GetCaseByStepID(ctx, uuid.Must(uuid.NewV7()).String())
		assert.ErrorIs(t, err, ErrStepNotFound)
	})

	t.Run("replace steps atomically", func(t *testing.T) {
		done := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
		next := []models.Step{
			{ID: stepID, Label: "Entrada do pedido", Status: models.StepCompleted, StepOrder: 0, ExpectedDuration: 30, CompletedDate: &done},
			{ID: c.Steps[1].ID, Label: "Perícia médica", Status: models.StepCurrent, StepOrder: 1, ExpectedDuration: 60},
		}
		require.NoError(t, repo.ReplaceCaseSteps(ctx, c.ID, next))

		got, err := repo.GetCaseByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StepCompleted, got.Steps[0].Status)
		require.NotNil(t, got.Steps[0].CompletedDate)
		assert.Equal(t, done, got.Steps[0].CompletedDate.UTC())
	})

	t.Run("status and title", func(t *testing.T) {
		require.NoError(t, repo.UpdateCaseStatus(ctx, c.ID, models.CaseMovedToJudicial))
		require.NoError(t, repo.UpdateCaseTitle(ctx, c.ID, "Judicial: Auxílio-Doença"))

		got, err := repo.GetCaseByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CaseMovedToJudicial, got.Status)
		assert.Equal(t, "Judicial: Auxílio-Doença", got.Title)
	})

	t.Run("list by client", func(t *testing.T) {
		cases, err := repo.ListCasesByClient(ctx, client.ID)
		require.NoError(t, err)
		require.Len(t, cases, 1)
	})

	t.Run("delete cascades to steps", func(t *testing.T) {
		require.NoError(t, repo.DeleteCase(ctx, c.ID))
		_, err := repo.GetCaseByStepID(ctx, stepID)
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestPostgres_Documents(t *testing.T) {
	repo, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	client := seedClient(t, repo, "Fernanda Alves")
	c := &models.LegalCase{
		ID:         uuid.Must(uuid.NewV7()).String(),
		ClientID:   client.ID,
		ClientName: client.Name,
		Family:     models.FamilyGeneric,
		Venue:      models.VenueJudicial,
		Title:      "Ação Ordinária",
		StartDate:  time.Now().UTC(),
		Status:     models.CaseActive,
	}
	require.NoError(t, repo.CreateCase(ctx, c))

	d := &models.Document{
		ID:           uuid.Must(uuid.NewV7()).String(),
		CaseID:       c.ID,
		Name:         "procuracao.pdf",
		UploadedBy:   client.ID,
		UploaderRole: models.RoleClient,
		SizeBytes:    4096,
		URL:          "/files/procuracao.pdf",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.CreateDocument(ctx, d))

	docs, err := repo.ListDocumentsByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "procuracao.pdf", docs[0].Name)

	require.NoError(t, repo.DeleteDocument(ctx, d.ID))
	assert.ErrorIs(t, repo.DeleteDocument(ctx, d.ID), ErrDocumentNotFound)
}
