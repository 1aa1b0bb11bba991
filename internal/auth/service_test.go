package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/campusswap/campusswap-backend/pkg/auth"
	"github.com/campusswap/campusswap-backend/pkg/auth/session"
	"github.com/campusswap/campusswap-backend/pkg/config"
	"github.com/campusswap/campusswap-backend/pkg/db/models"
	"github.com/campusswap/campusswap-backend/pkg/enums"
	pkgerrors "github.com/campusswap/campusswap-backend/pkg/errors"
	"github.com/campusswap/campusswap-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "campusswap-test",
	ExpirationMinutes: 15,
}

type stubUserRepo struct {
	user           *models.User
	lastLoginSetAt time.Time
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLoginSetAt = at
	return nil
}

type stubSessionManager struct {
	generated string
	rotateErr error
	revoked   []string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = accessID
	return "refresh-token", nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	return session.NewAccessID(), "rotated-refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func activeUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test Student",
		Role:         enums.UserRoleUser,
		IsActive:     true,
	}
}

func TestLogin(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	repo := &stubUserRepo{user: user}
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Student@Campus.edu",
		Password: "swap-me-123",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.User == nil || resp.User.Email != user.Email {
		t.Fatal("expected user projection")
	}
	if sessions.generated == "" {
		t.Fatal("expected session to be stored")
	}
	if repo.lastLoginSetAt.IsZero() {
		t.Fatal("expected last login to be recorded")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatal("token subject mismatch")
	}
	if claims.ID != sessions.generated {
		t.Fatal("token jti does not match the stored session")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "student@campus.edu",
		Password: "wrong",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@campus.edu",
		Password: "whatever",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	user.IsActive = false
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "student@campus.edu",
		Password: "swap-me-123",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRefresh(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "refresh-token",
	})
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken != "rotated-refresh-token" {
		t.Fatal("expected rotated token pair")
	}
}

func TestRefreshInvalidRefreshToken(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	sessions := &stubSessionManager{rotateErr: session.ErrInvalidRefreshToken}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})

	accessToken, _ := pkgAuth.MintAccessToken(testJWTConfig, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		JTI:    session.NewAccessID(),
	})

	_, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stolen",
	})
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionManager{}
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig,
	})

	if err := svc.Logout(context.Background(), "access-id-1"); err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id-1" {
		t.Fatal("expected session revocation")
	}
}

func TestLogoutMissingAccessID(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	err := svc.Logout(context.Background(), "  ")
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestMe(t *testing.T) {
	user := activeUser(t, "student@campus.edu", "swap-me-123")
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	dto, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("expected success got %v", err)
	}
	if dto.ID != user.ID || dto.Email != user.Email {
		t.Fatal("unexpected profile")
	}
}

func TestMeNotFound(t *testing.T) {
	svc, _ := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{},
		SessionManager: &stubSessionManager{},
		JWTConfig:      testJWTConfig,
	})

	_, err := svc.Me(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error %v", err)
	}
}
