package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/swot-auditor/swot-backend/internal/auth/domain"
)

const userColumns = `firebase_uid, email, name, person_type, document, whatsapp, uf, city,
	is_admin, is_approved, created_at, updated_at, last_login_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE firebase_uid = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

// Upsert creates the user or refreshes the profile fields of an existing one.
// Approval and admin flags are only written on insert.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (firebase_uid, email, name, person_type, document, whatsapp, uf, city, is_admin, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (firebase_uid) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    person_type = EXCLUDED.person_type,
		    document = EXCLUDED.document,
		    whatsapp = EXCLUDED.whatsapp,
		    uf = EXCLUDED.uf,
		    city = EXCLUDED.city,
		    updated_at = NOW()
		RETURNING is_admin, is_approved, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.FirebaseUID,
		user.Email,
		user.Name,
		string(user.PersonType),
		user.Document,
		user.WhatsApp,
		user.UF,
		user.City,
		user.IsAdmin,
		user.IsApproved,
	).Scan(&user.IsAdmin, &user.IsApproved, &user.CreatedAt, &user.UpdatedAt)
	return mapConstraint(err)
}

// Promote grants admin and approval, used for configured admin emails.
func (r *UserRepository) Promote(ctx context.Context, uid string) error {
	return r.exec(ctx, `UPDATE users SET is_admin = TRUE, is_approved = TRUE, updated_at = NOW() WHERE firebase_uid = $1`, uid)
}

func (r *UserRepository) Approve(ctx context.Context, uid string) error {
	return r.exec(ctx, `UPDATE users SET is_approved = TRUE, updated_at = NOW() WHERE firebase_uid = $1`, uid)
}

// UpdateLastLogin updates the last login timestamp
func (r *UserRepository) UpdateLastLogin(ctx context.Context, uid string) error {
	return r.exec(ctx, `UPDATE users SET last_login_at = NOW() WHERE firebase_uid = $1`, uid)
}

// ListPending returns users awaiting approval, oldest first.
func (r *UserRepository) ListPending(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_approved = FALSE ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepository) exec(ctx context.Context, query, uid string) error {
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var personType string
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.FirebaseUID,
		&user.Email,
		&user.Name,
		&personType,
		&user.Document,
		&user.WhatsApp,
		&user.UF,
		&user.City,
		&user.IsAdmin,
		&user.IsApproved,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	user.PersonType = domain.PersonType(personType)
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	return &user, nil
}

// mapConstraint turns unique violations into domain errors.
func mapConstraint(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return domain.ErrEmailTaken
	case strings.Contains(pgErr.ConstraintName, "document"):
		return domain.ErrDocumentTaken
	}
	return err
}
