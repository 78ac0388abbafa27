package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tranquilopay/tranquilopay-api/internal/domain"
	"github.com/tranquilopay/tranquilopay-api/internal/repository/ports"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

const pgUniqueViolation = "23505"

type AuthService struct {
	users ports.UserRepository
	jwt   *util.JWTManager
}

func NewAuthService(users ports.UserRepository, jwt *util.JWTManager) *AuthService {
	return &AuthService{users: users, jwt: jwt}
}

// RegisterInput carries every field the registration form collects. The
// profile fields are opaque here; only presence is enforced.
type RegisterInput struct {
	Name            string
	CPF             string
	State           string
	City            string
	Street          string
	District        string
	Number          string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

func (in *RegisterInput) missingFields() []string {
	checks := []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"cpf", in.CPF},
		{"state", in.State},
		{"city", in.City},
		{"street", in.Street},
		{"district", in.District},
		{"number", in.Number},
		{"email", in.Email},
		{"phone", in.Phone},
		{"password", in.Password},
		{"confirmpassword", in.ConfirmPassword},
	}
	var missing []string
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// Register creates a user account. Nothing is written unless every
// validation passes; the unique constraints on cpf and email back up the
// pre-check, so a concurrent duplicate registration still surfaces as
// ErrUserAlreadyExists instead of a second record.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if missing := in.missingFields(); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if _, err := s.users.FindByCPFOrEmail(ctx, in.CPF, in.Email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeErr(err)
	}

	if err := util.ValidatePassword(in.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordConfirm
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, storeErr(err)
	}

	user := &domain.User{
		Name:         in.Name,
		CPF:          in.CPF,
		Email:        in.Email,
		Phone:        in.Phone,
		State:        in.State,
		City:         in.City,
		Street:       in.Street,
		District:     in.District,
		Number:       in.Number,
		PasswordHash: hash,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrUserAlreadyExists
		}
		return nil, storeErr(err)
	}
	return created, nil
}

// Login verifies the credential and issues a session token. A missing user
// and a wrong password are reported separately, matching the API contract
// the frontend already depends on.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	var missing []string
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return "", nil, &ValidationError{Fields: missing}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, storeErr(err)
	}

	if !util.CheckPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidPassword
	}

	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return "", nil, storeErr(err)
	}
	return token, user, nil
}

// GetUser loads a profile by id; the password hash never leaves the domain
// layer because the JSON mapping hides it.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr(err)
	}
	return user, nil
}

// UserExists probes the directory with a single identifier that may be
// either a cpf or an email.
func (s *AuthService) UserExists(ctx context.Context, identifier string) (bool, error) {
	_, err := s.users.FindByCPFOrEmail(ctx, identifier, identifier)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, storeErr(err)
}

// storeErr collapses unexpected collaborator failures into the generic
// "try again later" error so internals never leak to callers.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
