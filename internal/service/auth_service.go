package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"vendshop/internal/model"
	"vendshop/internal/repository"
	"vendshop/pkg/jwt"
	"vendshop/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const resetTokenTTL = time.Hour

type AuthService interface {
	Register(email, password string) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	GetUser(id uuid.UUID) (*model.User, error)
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type authService struct {
	userRepo   repository.UserRepository
	mail       *mailer.Service
	adminEmail string
	baseURL    string
	log        *zap.Logger
}

func NewAuthService(uRepo repository.UserRepository, mail *mailer.Service, adminEmail, baseURL string, log *zap.Logger) AuthService {
	return &authService{
		userRepo:   uRepo,
		mail:       mail,
		adminEmail: strings.ToLower(adminEmail),
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

// Register creates an account and signs it in. The configured admin email
// registers with admin rights.
func (s *authService) Register(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user := &model.User{
		Email:   email,
		IsAdmin: email == s.adminEmail,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, "", internal("Registration failed")
	}

	// The unique index on email is the authority on duplicates; a concurrent
	// registration of the same address loses here, not in a pre-check race.
	if err := s.userRepo.Create(user); err != nil {
		if isDuplicateKey(err) {
			return nil, "", badRequest("Email already registered")
		}
		s.log.Error("user create failed", zap.String("email", email), zap.Error(err))
		return nil, "", internal("Registration failed")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", internal("Registration failed")
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()), zap.Bool("is_admin", user.IsAdmin))
	return user, token, nil
}

func (s *authService) Login(email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if isNotFound(err) {
			return nil, "", unauthorized("Invalid email or password")
		}
		return nil, "", internal("Login failed")
	}

	if user.IsBanned {
		return nil, "", forbidden("Your account has been banned")
	}

	if !user.CheckPassword(password) {
		return nil, "", unauthorized("Invalid email or password")
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", internal("Login failed")
	}

	return user, token, nil
}

func (s *authService) GetUser(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("User not found")
		}
		return nil, internal("Failed to fetch user")
	}
	return user, nil
}

// ForgotPassword issues a one-hour reset token and mails the link
func (s *authService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if isNotFound(err) {
			return notFound("No account found with this email")
		}
		return internal("Failed to process password reset request")
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return internal("Failed to process password reset request")
	}
	token := hex.EncodeToString(buf)
	expiry := time.Now().Add(resetTokenTTL)

	if err := s.userRepo.SetResetToken(user.ID, token, expiry); err != nil {
		return internal("Failed to process password reset request")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mail.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		s.log.Error("reset email failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		return internal("Failed to send reset email")
	}

	return nil
}

func (s *authService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if isNotFound(err) {
			return badRequest("Invalid or expired reset link")
		}
		return internal("Failed to reset password")
	}

	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return badRequest("Invalid or expired reset link")
	}

	refreshed := &model.User{}
	if err := refreshed.SetPassword(newPassword); err != nil {
		return internal("Failed to reset password")
	}

	if err := s.userRepo.UpdatePassword(user.ID, refreshed.Password); err != nil {
		return internal("Failed to reset password")
	}
	if err := s.userRepo.ClearResetToken(user.ID); err != nil {
		return internal("Failed to reset password")
	}

	s.log.Info("password reset", zap.String("user_id", user.ID.String()))
	return nil
}
