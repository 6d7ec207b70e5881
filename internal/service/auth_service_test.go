package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pekay23/raymond-gray-platform/internal/config"
	"github.com/pekay23/raymond-gray-platform/internal/domain"
	"github.com/pekay23/raymond-gray-platform/internal/repository"
)

type fakePasswordResetRepo struct {
	mu    sync.Mutex
	items map[string]*repository.PasswordResetToken
}

func newFakePasswordResetRepo() *fakePasswordResetRepo {
	return &fakePasswordResetRepo{items: make(map[string]*repository.PasswordResetToken)}
}

func (r *fakePasswordResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.CreatedAt = time.Now()
	stored := *token
	r.items[stored.ID] = &stored
	return nil
}

func (r *fakePasswordResetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.items {
		if stored.Token == token {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePasswordResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	stored.UsedAt = &now
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakePasswordResetRepo) {
	users := newFakeUserRepo()
	resets := newFakePasswordResetRepo()
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = bcrypt.MinCost
	cfg.Auth.PasswordResetTTLMinutes = 30
	svc := NewAuthService(cfg, AuthDependencies{
		UserRepo:          users,
		PasswordResetRepo: resets,
	})
	return svc, users, resets
}

func TestRegisterCreatesClientAccount(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, token, exp, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != domain.UserRoleClient {
		t.Fatalf("public sign-up must yield a CLIENT account, got %s", user.Role)
	}
	if user.Status != domain.UserStatusActive {
		t.Fatalf("new account must be ACTIVE, got %s", user.Status)
	}
	if token == "" || exp.Before(time.Now()) {
		t.Fatalf("register must return a live token")
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Fatalf("password stored in the clear")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, _, err := svc.Register(context.Background(), "Imposter", "ada@example.com", "other-pass"); err == nil {
		t.Fatalf("duplicate email must be rejected")
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "ada@example.com" || token == "" {
		t.Fatalf("login returned wrong account or empty token")
	}

	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "wrong"); err == nil {
		t.Fatalf("wrong password must be rejected")
	}
	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret-pass"); err == nil {
		t.Fatalf("unknown email must be rejected")
	}
}

func TestLoginRejectsSuspendedAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), "Ada", "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user.Status = domain.UserStatusSuspended
	if err := users.Update(context.Background(), user); err != nil {
		t.Fatalf("suspend failed: %v", err)
	}

	if _, _, _, err := svc.Login(context.Background(), "ada@example.com", "s3cret-pass"); err == nil {
		t.Fatalf("suspended account must not log in")
	}
}

func TestCreateUserGrantsRequestedRole(t *testing.T) {
	svc, _, _ := newAuthFixture()

	tech, err := svc.CreateUser(context.Background(), "Tess", "tess@example.com", "s3cret-pass", domain.UserRoleTechnician)
	if err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if tech.Role != domain.UserRoleTechnician {
		t.Fatalf("expected TECHNICIAN, got %s", tech.Role)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	if _, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	reset, err := svc.RequestPasswordReset(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("request reset failed: %v", err)
	}
	if err := svc.ConfirmPasswordReset(ctx, reset.Token, "new-pass-123"); err != nil {
		t.Fatalf("confirm reset failed: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "ada@example.com", "new-pass-123"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "s3cret-pass"); err == nil {
		t.Fatalf("old password must no longer work")
	}

	// A reset token is single use.
	if err := svc.ConfirmPasswordReset(ctx, reset.Token, "another-pass"); err == nil {
		t.Fatalf("reused reset token must be rejected")
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()
	user, _, _, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "new-pass-123"); err == nil {
		t.Fatalf("wrong current password must be rejected")
	}
	if err := svc.ChangePassword(ctx, user.ID, "s3cret-pass", "new-pass-123"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ada@example.com", "new-pass-123"); err != nil {
		t.Fatalf("login with changed password failed: %v", err)
	}
}
