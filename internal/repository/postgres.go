package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MichelCriadorFelix/Andamento-Processual-Felix-e-Castro-Advocacia/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, connString string) (*PostgresRepository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// CreateUser inserts a new user. Names are unique case-insensitively, enforced
// by a unique index on lower(name).
func (r *PostgresRepository) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (id, name, role, pin_hash, email, whatsapp, archived, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.Name, u.Role, u.PINHash, u.Email, u.WhatsApp, u.Archived, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, role, pin_hash, email, whatsapp, archived, created_at
		FROM users
		WHERE id = $1
	`

	u := &models.User{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Role, &u.PINHash, &u.Email, &u.WhatsApp, &u.Archived, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	query := `
		SELECT id, name, role, pin_hash, email, whatsapp, archived, created_at
		FROM users
		WHERE lower(name) = lower($1)
	`

	u := &models.User{}
	err := r.pool.QueryRow(ctx, query, name).Scan(
		&u.ID, &u.Name, &u.Role, &u.PINHash, &u.Email, &u.WhatsApp, &u.Archived, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by name: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, role, pin_hash, email, whatsapp, archived, created_at
		FROM users
		ORDER BY name
	`
	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) ListClients(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, role, pin_hash, email, whatsapp, archived, created_at
		FROM users
		WHERE role = 'CLIENT'
		ORDER BY name
	`
	return r.queryUsers(ctx, query)
}

func (r *PostgresRepository) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Role, &u.PINHash, &u.Email, &u.WhatsApp, &u.Archived, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users
		SET name = $1, role = $2, pin_hash = $3, email = $4, whatsapp = $5, archived = $6
		WHERE id = $7
	`

	result, err := r.pool.Exec(ctx, query,
		u.Name, u.Role, u.PINHash, u.Email, u.WhatsApp, u.Archived, u.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *PostgresRepository) CreateTemplate(ctx context.Context, t *models.CaseTemplate) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO templates (id, label, family, venue, is_system)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, query, t.ID, t.Label, t.Family, t.Venue, t.IsSystem); err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	if err := insertTemplateSteps(ctx, tx, t.ID, t.Steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetTemplateByID(ctx context.Context, id string) (*models.CaseTemplate, error) {
	query := `SELECT id, label, family, venue, is_system FROM templates WHERE id = $1`

	t := &models.CaseTemplate{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&t.ID, &t.Label, &t.Family, &t.Venue, &t.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	steps, err := r.queryTemplateSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Steps = steps

	return t, nil
}

func (r *PostgresRepository) ListTemplates(ctx context.Context) ([]*models.CaseTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, label, family, venue, is_system FROM templates ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := []*models.CaseTemplate{}
	for rows.Next() {
		t := &models.CaseTemplate{}
		if err := rows.Scan(&t.ID, &t.Label, &t.Family, &t.Venue, &t.IsSystem); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range templates {
		steps, err := r.queryTemplateSteps(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Steps = steps
	}

	return templates, nil
}

func (r *PostgresRepository) DeleteTemplate(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

// ReplaceTemplateSteps swaps the full step list of a template in one
// transaction so readers never observe a partial blueprint.
func (r *PostgresRepository) ReplaceTemplateSteps(ctx context.Context, templateID string, steps []models.TemplateStep) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM templates WHERE id = $1)`, templateID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check template: %w", err)
	}
	if !exists {
		return ErrTemplateNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM template_steps WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("failed to clear template steps: %w", err)
	}

	if err := insertTemplateSteps(ctx, tx, templateID, steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertTemplateSteps(ctx context.Context, tx pgx.Tx, templateID string, steps []models.TemplateStep) error {
	query := `
		INSERT INTO template_steps (id, template_id, label, expected_duration, step_order)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, s := range steps {
		if _, err := tx.Exec(ctx, query, s.ID, templateID, s.Label, s.ExpectedDuration, s.StepOrder); err != nil {
			return fmt.Errorf("failed to insert template step: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) queryTemplateSteps(ctx context.Context, templateID string) ([]models.TemplateStep, error) {
	query := `
		SELECT id, label, expected_duration, step_order
		FROM template_steps
		WHERE template_id = $1
		ORDER BY step_order
	`

	rows, err := r.pool.Query(ctx, query, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list template steps: %w", err)
	}
	defer rows.Close()

	steps := []models.TemplateStep{}
	for rows.Next() {
		var s models.TemplateStep
		if err := rows.Scan(&s.ID, &s.Label, &s.ExpectedDuration, &s.StepOrder); err != nil {
			return nil, fmt.Errorf("failed to scan template step: %w", err)
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

func (r *PostgresRepository) CreateCase(ctx context.Context, c *models.LegalCase) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO cases (id, client_id, client_name, template_id, family, venue,
			benefit_type, title, responsible_lawyer, start_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	if _, err := tx.Exec(ctx, query,
		c.ID, c.ClientID, c.ClientName, c.TemplateID, c.Family, c.Venue,
		c.BenefitType, c.Title, c.ResponsibleLawyer, c.StartDate, c.Status,
	); err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}

	if err := insertCaseSteps(ctx, tx, c.ID, c.Steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepository) GetCaseByID(ctx context.Context, id string) (*models.LegalCase, error) {
	query := `
		SELECT id, client_id, client_name, template_id, family, venue,
			benefit_type, title, responsible_lawyer, start_date, status
		FROM cases
		WHERE id = $1
	`

	c := &models.LegalCase{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.ClientID, &c.ClientName, &c.TemplateID, &c.Family, &c.Venue,
		&c.BenefitType, &c.Title, &c.ResponsibleLawyer, &c.StartDate, &c.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to get case: %w", err)
	}

	steps, err := r.queryCaseSteps(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Steps = steps

	return c, nil
}

func (r *PostgresRepository) GetCaseByStepID(ctx context.Context, stepID string) (*models.LegalCase, error) {
	var caseID string
	err := r.pool.QueryRow(ctx, `SELECT case_id FROM case_steps WHERE id = $1`, stepID).Scan(&caseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStepNotFound
		}
		return nil, fmt.Errorf("failed to resolve step: %w", err)
	}

	return r.GetCaseByID(ctx, caseID)
}

func (r *PostgresRepository) ListCases(ctx context.Context) ([]*models.LegalCase, error) {
	query := `
		SELECT id, client_id, client_name, template_id, family, venue,
			benefit_type, title, responsible_lawyer, start_date, status
		FROM cases
		ORDER BY start_date DESC
	`
	return r.queryCases(ctx, query)
}

func (r *PostgresRepository) ListCasesByClient(ctx context.Context, clientID string) ([]*models.LegalCase, error) {
	query := `
		SELECT id, client_id, client_name, template_id, family, venue,
			benefit_type, title, responsible_lawyer, start_date, status
		FROM cases
		WHERE client_id = $1
		ORDER BY start_date DESC
	`
	return r.queryCases(ctx, query, clientID)
}

func (r *PostgresRepository) queryCases(ctx context.Context, query string, args ...any) ([]*models.LegalCase, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	cases := []*models.LegalCase{}
	for rows.Next() {
		c := &models.LegalCase{}
		if err := rows.Scan(
			&c.ID, &c.ClientID, &c.ClientName, &c.TemplateID, &c.Family, &c.Venue,
			&c.BenefitType, &c.Title, &c.ResponsibleLawyer, &c.StartDate, &c.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, c := range cases {
		steps, err := r.queryCaseSteps(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		c.Steps = steps
	}

	return cases, nil
}

func (r *PostgresRepository) UpdateCaseStatus(ctx context.Context, caseID string, status models.CaseStatus) error {
	result, err := r.pool.Exec(ctx, `UPDATE cases SET status = $1 WHERE id = $2`, status, caseID)
	if err != nil {
		return fmt.Errorf("failed to update case status: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCaseNotFound
	}

	return nil
}

func (r *PostgresRepository) UpdateCaseTitle(ctx context.Context, caseID, title string) error {
	result, err := r.pool.Exec(ctx, `UPDATE cases SET title = $1 WHERE id = $2`, title, caseID)
	if err != nil {
		return fmt.Errorf("failed to update case title: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCaseNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteCase(ctx context.Context, caseID string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cases WHERE id = $1`, caseID)
	if err != nil {
		return fmt.Errorf("failed to delete case: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCaseNotFound
	}

	return nil
}

// ReplaceCaseSteps swaps the full step list of a case in one transaction.
// The progression engine always produces the complete new list, so a
// delete-and-insert keeps ordering and status transitions atomic.
func (r *PostgresRepository) ReplaceCaseSteps(ctx context.Context, caseID string, steps []models.Step) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM cases WHERE id = $1)`, caseID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check case: %w", err)
	}
	if !exists {
		return ErrCaseNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM case_steps WHERE case_id = $1`, caseID); err != nil {
		return fmt.Errorf("failed to clear case steps: %w", err)
	}

	if err := insertCaseSteps(ctx, tx, caseID, steps); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func insertCaseSteps(ctx context.Context, tx pgx.Tx, caseID string, steps []models.Step) error {
	query := `
		INSERT INTO case_steps (id, case_id, label, status, step_order,
			expected_duration, completed_date, admin_comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, s := range steps {
		if _, err := tx.Exec(ctx, query,
			s.ID, caseID, s.Label, s.Status, s.StepOrder,
			s.ExpectedDuration, s.CompletedDate, s.AdminComment,
		); err != nil {
			return fmt.Errorf("failed to insert case step: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) queryCaseSteps(ctx context.Context, caseID string) ([]models.Step, error) {
	query := `
		SELECT id, label, status, step_order, expected_duration, completed_date, admin_comment
		FROM case_steps
		WHERE case_id = $1
		ORDER BY step_order
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list case steps: %w", err)
	}
	defer rows.Close()

	steps := []models.Step{}
	for rows.Next() {
		var s models.Step
		if err := rows.Scan(
			&s.ID, &s.Label, &s.Status, &s.StepOrder,
			&s.ExpectedDuration, &s.CompletedDate, &s.AdminComment,
		); err != nil {
			return nil, fmt.Errorf("failed to scan case step: %w", err)
		}
		steps = append(steps, s)
	}

	return steps, rows.Err()
}

func (r *PostgresRepository) CreateDocument(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (id, case_id, name, uploaded_by, uploader_role, size_bytes, url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.CaseID, d.Name, d.UploadedBy, d.UploaderRole, d.SizeBytes, d.URL, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListDocumentsByCase(ctx context.Context, caseID string) ([]*models.Document, error) {
	query := `
		SELECT id, case_id, name, uploaded_by, uploader_role, size_bytes, url, created_at
		FROM documents
		WHERE case_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []*models.Document{}
	for rows.Next() {
		d := &models.Document{}
		if err := rows.Scan(
			&d.ID, &d.CaseID, &d.Name, &d.UploadedBy, &d.UploaderRole, &d.SizeBytes, &d.URL, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

func (r *PostgresRepository) DeleteDocument(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
