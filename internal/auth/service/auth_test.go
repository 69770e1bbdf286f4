package service

import (
	"context"
	"io"
	"testing"
	"time"

	autherrors "github.com/Prasi710/Turffy/internal/auth/errors"
	"github.com/Prasi710/Turffy/internal/auth/token"
	"github.com/Prasi710/Turffy/internal/auth/validator"
	"github.com/Prasi710/Turffy/pkg/config"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	"github.com/Prasi710/Turffy/pkg/logger"
	"github.com/Prasi710/Turffy/pkg/model"
)

type mockUserRepo struct {
	findOrCreateByPhoneFn func(ctx context.Context, phone, newUserID string) (*model.User, error)
	findByUserIDFn        func(ctx context.Context, userID string) (*model.User, error)
	updateProfileFn       func(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error)
}

func (m *mockUserRepo) FindOrCreateByPhone(ctx context.Context, phone, newUserID string) (*model.User, error) {
	return m.findOrCreateByPhoneFn(ctx, phone, newUserID)
}

func (m *mockUserRepo) FindByUserID(ctx context.Context, userID string) (*model.User, error) {
	return m.findByUserIDFn(ctx, userID)
}

func (m *mockUserRepo) UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
	return m.updateProfileFn(ctx, userID, update)
}

type mockOtpRepo struct {
	saveFn    func(ctx context.Context, code *model.OtpCode) error
	consumeFn func(ctx context.Context, phone, code string) error
}

func (m *mockOtpRepo) Save(ctx context.Context, code *model.OtpCode) error {
	return m.saveFn(ctx, code)
}

func (m *mockOtpRepo) Consume(ctx context.Context, phone, code string) error {
	return m.consumeFn(ctx, phone, code)
}

func testConfig() *config.Config {
	return &config.Config{
		OtpTTL: 5 * time.Minute,
		Log:    logger.New(logger.Config{Output: io.Discard}),
	}
}

func newTestAuthService(users *mockUserRepo, codes *mockOtpRepo) AuthService {
	cfg := testConfig()
	return NewAuthService(
		users,
		codes,
		token.NewManager("test-secret", time.Hour),
		validator.NewAuthValidator(cfg.Log),
		cfg,
	)
}

func expectAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError with code %s, got %v", code, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}

func TestSendCodeStoresNormalizedPhone(t *testing.T) {
	var saved *model.OtpCode
	codes := &mockOtpRepo{
		saveFn: func(_ context.Context, code *model.OtpCode) error {
			saved = code
			return nil
		},
	}
	svc := newTestAuthService(&mockUserRepo{}, codes)

	if err := svc.SendCode(context.Background(), "+91 98765 43210"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if saved == nil {
		t.Fatal("code was not stored")
	}
	if saved.Phone != "9876543210" {
		t.Errorf("expected normalized phone, got %s", saved.Phone)
	}
	if len(saved.Code) != 6 {
		t.Errorf("expected a 6-digit code, got %q", saved.Code)
	}
	if !saved.ExpiresAt.After(time.Now()) {
		t.Error("code must expire in the future")
	}
}

func TestSendCodeRejectsInvalidPhone(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockOtpRepo{
		saveFn: func(context.Context, *model.OtpCode) error {
			t.Fatal("nothing may be stored for an invalid phone")
			return nil
		},
	})

	err := svc.SendCode(context.Background(), "12345")

	expectAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestVerifyCodeLogsInAndProvisions(t *testing.T) {
	codes := &mockOtpRepo{
		consumeFn: func(_ context.Context, phone, code string) error {
			if phone != "9876543210" || code != "123456" {
				t.Errorf("unexpected consume (%s, %s)", phone, code)
			}
			return nil
		},
	}
	users := &mockUserRepo{
		findOrCreateByPhoneFn: func(_ context.Context, phone, newUserID string) (*model.User, error) {
			if newUserID == "" {
				t.Error("a candidate user ID must be supplied for provisioning")
			}
			return &model.User{UserID: "user-1", Phone: phone}, nil
		},
	}
	svc := newTestAuthService(users, codes)

	bearer, user, err := svc.VerifyCode(context.Background(), "9876543210", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bearer == "" {
		t.Error("expected a bearer token")
	}
	if user.UserID != "user-1" {
		t.Errorf("unexpected user %+v", user)
	}

	userID, err := token.NewManager("test-secret", time.Hour).Verify(bearer)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("token carries user ID %s, want user-1", userID)
	}
}

func TestVerifyCodeWrongCode(t *testing.T) {
	codes := &mockOtpRepo{
		consumeFn: func(context.Context, string, string) error {
			return autherrors.ErrCodeMismatch
		},
	}
	svc := newTestAuthService(&mockUserRepo{}, codes)

	_, _, err := svc.VerifyCode(context.Background(), "9876543210", "000000")

	expectAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestVerifyCodeRejectsShortCode(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{}, &mockOtpRepo{
		consumeFn: func(context.Context, string, string) error {
			t.Fatal("a malformed code must not reach storage")
			return nil
		},
	})

	_, _, err := svc.VerifyCode(context.Background(), "9876543210", "123")

	expectAppErrorCode(t, err, apperrors.CodeInvalidInput)
}

func TestUpdateProfileSanitizesAndValidates(t *testing.T) {
	users := &mockUserRepo{
		updateProfileFn: func(_ context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
			if update.Name != "Priya Sharma" {
				t.Errorf("name not normalized: %q", update.Name)
			}
			if update.Email != "priya@example.com" {
				t.Errorf("email not normalized: %q", update.Email)
			}
			return &model.User{UserID: userID, Name: update.Name, Email: update.Email}, nil
		},
	}
	svc := newTestAuthService(users, &mockOtpRepo{})

	user, err := svc.UpdateProfile(context.Background(), "user-1", &model.ProfileUpdate{
		Name:  "  Priya   Sharma ",
		Email: " Priya@Example.com ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Priya Sharma" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestUpdateProfileRejectsBadEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{
		updateProfileFn: func(context.Context, string, *model.ProfileUpdate) (*model.User, error) {
			t.Fatal("invalid input must not reach storage")
			return nil, nil
		},
	}, &mockOtpRepo{})

	_, err := svc.UpdateProfile(context.Background(), "user-1", &model.ProfileUpdate{
		Name:  "Priya",
		Email: "not-an-email",
	})

	expectAppErrorCode(t, err, apperrors.CodeValidation)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := newTestAuthService(&mockUserRepo{
		findByUserIDFn: func(context.Context, string) (*model.User, error) {
			return nil, autherrors.ErrUserNotFound
		},
	}, &mockOtpRepo{})

	_, err := svc.GetProfile(context.Background(), "user-404")

	expectAppErrorCode(t, err, apperrors.CodeNotFound)
}
