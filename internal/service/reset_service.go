package service

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tranquilopay/tranquilopay-api/internal/repository/ports"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

// PasswordResetSender delivers the one-time token out of band.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// PasswordResetService owns the reset-token state machine: a user has no
// pending reset, then exactly one pending token, then none again once the
// token is consumed or replaced.
type PasswordResetService struct {
	users  ports.UserRepository
	mailer PasswordResetSender
	ttl    time.Duration
	now    func() time.Time
}

func NewPasswordResetService(users ports.UserRepository, mailer PasswordResetSender, ttl time.Duration) *PasswordResetService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &PasswordResetService{users: users, mailer: mailer, ttl: ttl, now: time.Now}
}

// Request generates a fresh token for the account, overwriting any pending
// one, and mails it. The token is persisted before delivery is attempted;
// if the mail bounces the stored token stays usable, so a retried request
// simply issues a replacement.
func (s *PasswordResetService) Request(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}

	token, err := util.NewResetToken()
	if err != nil {
		return storeErr(err)
	}
	expiresAt := s.now().Add(s.ttl)

	if err := s.users.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return storeErr(err)
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}
	return nil
}

// Confirm consumes a pending token and sets the new password. The hash
// update and the token clear happen in one store write, so the token can
// never be replayed after a successful reset.
func (s *PasswordResetService) Confirm(ctx context.Context, email, token, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return storeErr(err)
	}

	if !user.HasPendingReset() {
		return ErrResetTokenInvalid
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(*user.ResetToken)) != 1 {
		return ErrResetTokenInvalid
	}
	if s.now().After(*user.ResetExpiresAt) {
		return ErrResetTokenExpired
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return storeErr(err)
	}

	if err := s.users.UpdatePasswordAndClearReset(ctx, user.ID, hash); err != nil {
		return storeErr(err)
	}
	return nil
}
