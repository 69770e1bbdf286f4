package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	autherrors "github.com/Prasi710/Turffy/internal/auth/errors"
	"github.com/Prasi710/Turffy/internal/auth/repository"
	"github.com/Prasi710/Turffy/internal/auth/token"
	"github.com/Prasi710/Turffy/internal/auth/validator"
	"github.com/Prasi710/Turffy/pkg/config"
	apperrors "github.com/Prasi710/Turffy/pkg/errors"
	"github.com/Prasi710/Turffy/pkg/model"
	"github.com/Prasi710/Turffy/pkg/sanitizer"

	"github.com/google/uuid"
)

type AuthService interface {
	SendCode(ctx context.Context, mobile string) error
	VerifyCode(ctx context.Context, mobile, code string) (string, *model.User, error)
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error)
}

type authService struct {
	users     repository.UserRepository
	codes     repository.OtpRepository
	tokens    *token.Manager
	validator *validator.AuthValidator
	cfg       *config.Config
}

func NewAuthService(
	users repository.UserRepository,
	codes repository.OtpRepository,
	tokens *token.Manager,
	authValidator *validator.AuthValidator,
	cfg *config.Config,
) AuthService {
	return &authService{
		users:     users,
		codes:     codes,
		tokens:    tokens,
		validator: authValidator,
		cfg:       cfg,
	}
}

// SendCode issues a fresh one-time code for the phone number. Delivery
// through an SMS gateway is an external concern; the code is written to
// the service log until one is integrated.
func (s *authService) SendCode(ctx context.Context, mobile string) error {
	phone := sanitizer.NormalizePhone(mobile)
	if phone == "" {
		return apperrors.InvalidInput("Invalid mobile number")
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.Internal("Failed to generate login code", err)
	}

	otp := &model.OtpCode{
		Phone:     phone,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.cfg.OtpTTL),
	}
	if err := s.codes.Save(ctx, otp); err != nil {
		s.cfg.Log.Error("Failed to store login code", "phone", phone, "error", err)
		return apperrors.Internal("Failed to send login code", err)
	}

	// TODO: deliver via SMS gateway once one is procured; until then the
	// code only reaches operators through this log line.
	s.cfg.Log.Info("Login code issued",
		"phone", phone,
		"code", code,
		"expires_at", otp.ExpiresAt,
	)
	return nil
}

func (s *authService) VerifyCode(ctx context.Context, mobile, code string) (string, *model.User, error) {
	phone := sanitizer.NormalizePhone(mobile)
	if phone == "" {
		return "", nil, apperrors.InvalidInput("Invalid mobile number")
	}
	if len(code) != 6 {
		return "", nil, apperrors.InvalidInput("Invalid OTP")
	}

	if err := s.codes.Consume(ctx, phone, code); err != nil {
		if errors.Is(err, autherrors.ErrCodeMismatch) {
			return "", nil, apperrors.InvalidInput("Invalid OTP")
		}
		s.cfg.Log.Error("Failed to verify login code", "phone", phone, "error", err)
		return "", nil, apperrors.Internal("Failed to verify login code", err)
	}

	user, err := s.users.FindOrCreateByPhone(ctx, phone, uuid.NewString())
	if err != nil {
		s.cfg.Log.Error("Failed to resolve user", "phone", phone, "error", err)
		return "", nil, apperrors.Internal("Failed to log in", err)
	}

	bearer, err := s.tokens.Issue(user.UserID, user.Phone)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "user_id", user.UserID, "error", err)
		return "", nil, apperrors.Internal("Failed to log in", err)
	}

	s.cfg.Log.Info("User logged in", "user_id", user.UserID)
	return bearer, user, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update *model.ProfileUpdate) (*model.User, error) {
	update.Name = sanitizer.NormalizeName(update.Name)
	update.Email = sanitizer.NormalizeEmail(update.Email)

	if err := s.validator.ValidateProfileUpdate(update); err != nil {
		return nil, apperrors.Validation("Invalid profile input", map[string]any{"error": err.Error()})
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, autherrors.ErrUserNotFound) {
			return nil, apperrors.NotFound("User")
		}
		s.cfg.Log.Error("Failed to update profile", "user_id", userID, "error", err)
		return nil, apperrors.Internal("Failed to update profile", err)
	}

	s.cfg.Log.Info("Profile updated", "user_id", userID)
	return user, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
