package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	Name           string     `db:"name" json:"name"`
	CPF            string     `db:"cpf" json:"cpf"`
	Email          string     `db:"email" json:"email"`
	Phone          string     `db:"phone" json:"phone"`
	State          string     `db:"state" json:"state"`
	City           string     `db:"city" json:"city"`
	Street         string     `db:"street" json:"street"`
	District       string     `db:"district" json:"district"`
	Number         string     `db:"number" json:"number"`
	PasswordHash   string     `db:"password_hash" json:"-"`
	ResetToken     *string    `db:"reset_token" json:"-"`
	ResetExpiresAt *time.Time `db:"reset_expires_at" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// HasPendingReset reports whether a reset token is stored for the user.
// Token and expiry are written and cleared together, so requiring both
// guards against a half-populated record.
func (u *User) HasPendingReset() bool {
	return u.ResetToken != nil && u.ResetExpiresAt != nil
}
