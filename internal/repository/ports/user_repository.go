package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tranquilopay/tranquilopay-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByCPFOrEmail(ctx context.Context, cpf, email string) (*domain.User, error)
	SetResetToken(ctx context.Context, id uuid.UUID, token string, expiresAt time.Time) error
	UpdatePasswordAndClearReset(ctx context.Context, id uuid.UUID, passwordHash string) error
}
