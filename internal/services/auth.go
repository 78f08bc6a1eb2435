package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"school-store/internal/domain/models"
	"school-store/internal/lib/sessions"
	"school-store/internal/middlewares"
	"school-store/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	log            *slog.Logger
	authRepository AuthRepository
	sessionStore   SessionStore
	gen            *sessions.Generator
}

type AuthRepository interface {
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
}

type SessionStore interface {
	StoreSession(ctx context.Context, sessionID, userID string) error
	DeleteSession(ctx context.Context, sessionID string) error
}

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToCreateSession = errors.New("failed to create session")
)

func NewAuthService(log *slog.Logger, authRepository AuthRepository, sessionStore SessionStore,
	gen *sessions.Generator) *AuthService {
	return &AuthService{
		log:            log,
		authRepository: authRepository,
		sessionStore:   sessionStore,
		gen:            gen,
	}
}

// Login verifies credentials and opens a server-side session. The returned
// token goes into the session cookie; the user profile is the login response.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.User, string, error) {
	const op = "services.AuthService.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", username),
	)

	if err := middlewares.CheckLogin(username, password); err != nil {
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.authRepository.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Info("login attempt for unknown user")
			return models.User{}, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to look up user", slog.String("error", err.Error()))
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, sessionID, err := s.gen.Mint(user.ID.String())
	if err != nil {
		log.Error("failed to mint session token", slog.String("error", err.Error()))
		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrFailedToCreateSession)
	}

	if err := s.sessionStore.StoreSession(ctx, sessionID, user.ID.String()); err != nil {
		log.Error("failed to store session", slog.String("error", err.Error()))
		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrFailedToCreateSession)
	}

	log.Info("user logged in", slog.String("role", string(user.Role)))

	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	const op = "services.AuthService.Logout"

	if err := s.sessionStore.DeleteSession(ctx, sessionID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Me returns the fresh profile for an authenticated user. Callers rely on
// this for the authoritative points balance after purchases and awards.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (models.User, error) {
	const op = "services.AuthService.Me"

	user, err := s.authRepository.GetUserById(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

// ResolveRole backs the teacher-gate middleware.
func (s *AuthService) ResolveRole(ctx context.Context, userID string) (string, error) {
	const op = "services.AuthService.ResolveRole"

	id, err := uuid.Parse(userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.authRepository.GetUserById(ctx, id)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return string(user.Role), nil
}
