package service

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tranquilopay/tranquilopay-api/internal/domain"
	"github.com/tranquilopay/tranquilopay-api/internal/util"
)

type fakeResetMailer struct {
	sent []struct {
		email string
		token string
	}
	err error
}

func (f *fakeResetMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	f.sent = append(f.sent, struct {
		email string
		token string
	}{email: email, token: token})
	return f.err
}

func stringPtr(v string) *string {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	user := &domain.User{ID: uuid.New(), Email: "reset@example.com"}

	repo := &fakeUserRepo{findByEmailResult: user}
	mailer := &fakeResetMailer{}
	svc := NewPasswordResetService(repo, mailer, time.Hour)

	before := time.Now()
	if err := svc.Request(ctx, user.Email); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.setResetCalls) != 1 {
		t.Fatalf("expected one reset-token write, got %d", len(repo.setResetCalls))
	}
	call := repo.setResetCalls[0]
	if call.id != user.ID {
		t.Fatalf("expected token stored for %s, got %s", user.ID, call.id)
	}
	if raw, err := hex.DecodeString(call.token); err != nil || len(raw) != 20 {
		t.Fatalf("expected 160-bit hex token, got %q", call.token)
	}
	if call.expiresAt.Before(before.Add(59*time.Minute)) || call.expiresAt.After(time.Now().Add(61*time.Minute)) {
		t.Fatalf("expected expiry about one hour out, got %s", call.expiresAt)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(mailer.sent))
	}
	if mailer.sent[0].email != user.Email || mailer.sent[0].token != call.token {
		t.Fatalf("expected persisted token mailed to the user, got %+v", mailer.sent[0])
	}
}

func TestRequestPasswordResetUserNotFound(t *testing.T) {
	repo := &fakeUserRepo{findByEmailErr: sql.ErrNoRows}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)

	err := svc.Request(context.Background(), "none@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.setResetCalls) != 0 {
		t.Fatal("expected no token write for an unknown user")
	}
}

func TestRequestPasswordResetMailFailure(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "reset@example.com"}
	repo := &fakeUserRepo{findByEmailResult: user}
	mailer := &fakeResetMailer{err: errors.New("smtp down")}
	svc := NewPasswordResetService(repo, mailer, time.Hour)

	err := svc.Request(context.Background(), user.Email)
	if !errors.Is(err, ErrMailDelivery) {
		t.Fatalf("expected ErrMailDelivery, got %v", err)
	}
	// The token was persisted before the send; delivery failure does not
	// roll it back.
	if len(repo.setResetCalls) != 1 {
		t.Fatalf("expected the token write to survive the mail failure, got %d writes", len(repo.setResetCalls))
	}
}

func TestRequestPasswordResetOverwritesPending(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	seedUser(t, repo, "reset@example.com", "OldPass1!")
	mailer := &fakeResetMailer{}
	svc := NewPasswordResetService(repo, mailer, time.Hour)

	if err := svc.Request(ctx, "reset@example.com"); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if err := svc.Request(ctx, "reset@example.com"); err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	first := mailer.sent[0].token
	second := mailer.sent[1].token
	if first == second {
		t.Fatal("expected a fresh token per request")
	}

	// The first token was invalidated by the overwrite.
	err := svc.Confirm(ctx, "reset@example.com", first, "NewPass1!")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected stale token to be invalid, got %v", err)
	}
	if err := svc.Confirm(ctx, "reset@example.com", second, "NewPass1!"); err != nil {
		t.Fatalf("expected current token to work, got %v", err)
	}
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()
	token := "aba1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3"
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "reset@example.com",
		ResetToken:     stringPtr(token),
		ResetExpiresAt: timePtr(time.Now().Add(30 * time.Minute)),
	}

	repo := &fakeUserRepo{findByEmailResult: user}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)

	if err := svc.Confirm(ctx, user.Email, token, "NewPass1!"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.updatePasswordCalls) != 1 {
		t.Fatalf("expected one password update, got %d", len(repo.updatePasswordCalls))
	}
	if repo.updatePasswordCalls[0].id != user.ID {
		t.Fatalf("expected update for %s", user.ID)
	}
	if !util.CheckPassword("NewPass1!", repo.updatePasswordCalls[0].hash) {
		t.Fatal("expected the stored hash to verify against the new password")
	}
}

func TestConfirmPasswordResetNoPendingToken(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Email: "reset@example.com"}
	repo := &fakeUserRepo{findByEmailResult: user}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)

	err := svc.Confirm(context.Background(), user.Email, "anything", "NewPass1!")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
}

func TestConfirmPasswordResetWrongToken(t *testing.T) {
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "reset@example.com",
		ResetToken:     stringPtr("expected-token"),
		ResetExpiresAt: timePtr(time.Now().Add(30 * time.Minute)),
	}
	repo := &fakeUserRepo{findByEmailResult: user}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)

	err := svc.Confirm(context.Background(), user.Email, "some-other-token", "NewPass1!")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected ErrResetTokenInvalid, got %v", err)
	}
	if len(repo.updatePasswordCalls) != 0 {
		t.Fatal("expected no password update for a wrong token")
	}
}

func TestConfirmPasswordResetExpiredToken(t *testing.T) {
	token := "aba1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3"
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "reset@example.com",
		ResetToken:     stringPtr(token),
		ResetExpiresAt: timePtr(time.Now().Add(time.Hour)),
	}
	repo := &fakeUserRepo{findByEmailResult: user}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)
	// Move the clock past the stored expiry; the token string still matches.
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	err := svc.Confirm(context.Background(), user.Email, token, "NewPass1!")
	if !errors.Is(err, ErrResetTokenExpired) {
		t.Fatalf("expected ErrResetTokenExpired, got %v", err)
	}
	if len(repo.updatePasswordCalls) != 0 {
		t.Fatal("expected no password update for an expired token")
	}
}

func TestConfirmPasswordResetWeakPassword(t *testing.T) {
	token := "aba1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3"
	user := &domain.User{
		ID:             uuid.New(),
		Email:          "reset@example.com",
		ResetToken:     stringPtr(token),
		ResetExpiresAt: timePtr(time.Now().Add(30 * time.Minute)),
	}
	repo := &fakeUserRepo{findByEmailResult: user}
	svc := NewPasswordResetService(repo, &fakeResetMailer{}, time.Hour)

	err := svc.Confirm(context.Background(), user.Email, token, "weakpassword")
	if !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
	if len(repo.updatePasswordCalls) != 0 {
		t.Fatal("expected no password update for a weak replacement")
	}
}

func TestConfirmPasswordResetSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	seedUser(t, repo, "reset@example.com", "OldPass1!")
	mailer := &fakeResetMailer{}
	svc := NewPasswordResetService(repo, mailer, time.Hour)

	if err := svc.Request(ctx, "reset@example.com"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	token := mailer.sent[0].token

	if err := svc.Confirm(ctx, "reset@example.com", token, "NewPass1!"); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	err := svc.Confirm(ctx, "reset@example.com", token, "OtherPass1!")
	if !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected consumed token to be invalid, got %v", err)
	}
}

// Full credential lifecycle: register, log in, fail a login, reset the
// password through a mailed token, then log in with the new credential.
func TestCredentialLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := newMemUserRepo()
	jwtManager := util.NewJWTManager("lifecycle-secret", 0)
	auth := NewAuthService(repo, jwtManager)
	mailer := &fakeResetMailer{}
	resets := NewPasswordResetService(repo, mailer, time.Hour)

	in := validRegisterInput()
	in.Email = "a@x.com"
	if _, err := auth.Register(ctx, in); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, _, err := auth.Login(ctx, "a@x.com", "Abcd123!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := jwtManager.Parse(token); err != nil {
		t.Fatalf("issued token did not verify: %v", err)
	}

	if _, _, err := auth.Login(ctx, "a@x.com", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	if err := resets.Request(ctx, "a@x.com"); err != nil {
		t.Fatalf("reset request failed: %v", err)
	}
	resetToken := mailer.sent[0].token

	if err := resets.Confirm(ctx, "a@x.com", resetToken, "NewPass1!"); err != nil {
		t.Fatalf("reset confirm failed: %v", err)
	}

	if _, _, err := auth.Login(ctx, "a@x.com", "Abcd123!"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected old password to be rejected, got %v", err)
	}
	if _, _, err := auth.Login(ctx, "a@x.com", "NewPass1!"); err != nil {
		t.Fatalf("expected new password to log in, got %v", err)
	}
}

func seedUser(t *testing.T, repo *memUserRepo, email, password string) *domain.User {
	t.Helper()
	hash, err := util.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Name:         "Test User",
		CPF:          uuid.NewString(),
		Email:        email,
		Phone:        "+55 11 90000-0000",
		State:        "SP",
		City:         "Sao Paulo",
		Street:       "Rua A",
		District:     "Centro",
		Number:       "1",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
