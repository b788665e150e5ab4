package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/cyberfanta/shopping-exercise/internal/logger"
	"github.com/cyberfanta/shopping-exercise/internal/port"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	resetTokenBytes   = 32
	resetTokenTTL     = time.Hour
)

// Session is returned by register and login.
type Session struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type AuthService struct {
	store       port.Store
	tokens      *TokenService
	mailer      port.PasswordResetNotifier
	log         *zap.Logger
	frontendURL string

	now     func() time.Time
	pending sync.WaitGroup
}

func NewAuthService(
	store port.Store,
	tokens *TokenService,
	mailer port.PasswordResetNotifier,
	log *zap.Logger,
	frontendURL string,
) *AuthService {
	return &AuthService{
		store:       store,
		tokens:      tokens,
		mailer:      mailer,
		log:         log,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		now:         time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (Session, error) {
	if strings.TrimSpace(reg.Email) == "" {
		return Session{}, domain.Validation("email is required")
	}
	if len(reg.Password) < minPasswordLength {
		return Session{}, domain.Validation("password must be at least %d characters", minPasswordLength)
	}
	if strings.TrimSpace(reg.FirstName) == "" || strings.TrimSpace(reg.LastName) == "" {
		return Session{}, domain.Validation("first_name and last_name are required")
	}

	hash, err := hashPassword(reg.Password)
	if err != nil {
		return Session{}, err
	}

	user, err := s.store.Repositories().Users.Create(ctx, domain.User{
		Email:        reg.Email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Phone:        reg.Phone,
	})
	if err != nil {
		return Session{}, err
	}

	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (Session, error) {
	user, err := s.store.Repositories().Users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return Session{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("repos.Users.GetByEmail: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return Session{}, domain.ErrAccountDisabled
	}

	return s.session(user)
}

// ForgotPassword never reveals whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	log := logger.FromContext(ctx, s.log)

	user, err := s.store.Repositories().Users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("repos.Users.GetByEmail: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	err = s.store.Repositories().Users.CreateResetToken(ctx, domain.ResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(resetTokenTTL),
	})
	if err != nil {
		return fmt.Errorf("repos.Users.CreateResetToken: %w", err)
	}

	if s.mailer == nil {
		return nil
	}

	link := s.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
	mailCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer cancel()

		if err := s.mailer.PasswordReset(mailCtx, user, link, resetTokenTTL); err != nil {
			log.Warn("password reset mail failed", zap.String("user_id", user.ID.String()), zap.Error(err))
		}
	}()

	return nil
}

// ResetPassword consumes token and stores the new password in one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" {
		return domain.ErrInvalidToken
	}
	if len(password) < minPasswordLength {
		return domain.Validation("password must be at least %d characters", minPasswordLength)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	return s.store.Atomic(ctx, func(repos port.Repositories) error {
		userID, err := repos.Users.ConsumeResetToken(ctx, token)
		if err != nil {
			return err
		}

		if err := repos.Users.UpdatePassword(ctx, userID, hash); err != nil {
			return fmt.Errorf("repos.Users.UpdatePassword: %w", err)
		}

		return nil
	})
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return s.store.Repositories().Users.GetByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch domain.ProfilePatch) (domain.User, error) {
	return s.store.Repositories().Users.UpdateProfile(ctx, userID, patch)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < minPasswordLength {
		return domain.Validation("password must be at least %d characters", minPasswordLength)
	}

	repos := s.store.Repositories()

	user, err := repos.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return domain.ErrWrongPassword
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}

	if err := repos.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("repos.Users.UpdatePassword: %w", err)
	}

	return nil
}

// Wait blocks until every dispatched reset mail has finished.
func (s *AuthService) Wait() {
	s.pending.Wait()
}

func (s *AuthService) session(user domain.User) (Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt.GenerateFromPassword: %w", err)
	}
	return string(hash), nil
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("rand.Read: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
