package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tranquilopay/tranquilopay-api/internal/domain"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, name, cpf, email, phone, state, city, street, district, number, password_hash, reset_token, reset_expires_at, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO user_account (name, cpf, email, phone, state, city, street, district, number, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + userColumns + `
    `
	row := r.db.QueryRowxContext(ctx, query,
		user.Name, user.CPF, user.Email, user.Phone,
		user.State, user.City, user.Street, user.District, user.Number,
		user.PasswordHash,
	)
	var created domain.User
	if err := row.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE id = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByCPFOrEmail(ctx context.Context, cpf, email string) (*domain.User, error) {
	const query = `
        SELECT ` + userColumns + `
        FROM user_account
        WHERE cpf = $1 OR email = $2
        LIMIT 1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, cpf, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetResetToken replaces any pending reset token; one pending reset per user.
func (r *UserRepository) SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error {
	const query = `
        UPDATE user_account
        SET reset_token = $2,
            reset_expires_at = $3,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, token, expiresAt)
	return err
}

// UpdatePasswordAndClearReset writes the new hash and clears the reset pair
// in a single statement so the token can never outlive the password change.
func (r *UserRepository) UpdatePasswordAndClearReset(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
        UPDATE user_account
        SET password_hash = $2,
            reset_token = NULL,
            reset_expires_at = NULL,
            updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, passwordHash)
	return err
}
