package services

import (
	"context"
	"fmt"
	"log/slog"

	"school-store/internal/domain/dto"
	"school-store/internal/domain/models"
	"school-store/internal/middlewares"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	log            *slog.Logger
	userRepository UserRepository
}

type UserRepository interface {
	SaveUser(ctx context.Context, user models.User) (models.User, error)
	GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

func NewUserService(log *slog.Logger, userRepository UserRepository) *UserService {
	return &UserService{
		log:            log,
		userRepository: userRepository,
	}
}

func userToDTO(user models.User) dto.UserDTO {
	return dto.UserDTO{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          string(user.Role),
		PointsBalance: user.PointsBalance,
		CreatedAt:     user.CreatedAt,
	}
}

func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	const op = "services.UserService.ListUsers"

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]dto.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, userToDTO(u))
	}

	return out, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (dto.UserDTO, error) {
	const op = "services.UserService.GetUser"

	user, err := s.userRepository.GetUserById(ctx, userID)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	return userToDTO(user), nil
}

func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (dto.UserDTO, error) {
	const op = "services.UserService.CreateUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("username", req.Username),
	)

	if err := middlewares.CheckCreateUser(req.Username, req.Password, req.FirstName, req.LastName, req.Email, req.Role); err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	balance := req.PointsBalance
	if balance < 0 {
		balance = 0
	}

	saved, err := s.userRepository.SaveUser(ctx, models.User{
		Username:      req.Username,
		Email:         req.Email,
		PasswordHash:  passHash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Role:          models.Role(req.Role),
		PointsBalance: balance,
	})
	if err != nil {
		log.Error("failed to save user", slog.String("error", err.Error()))
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user created", slog.String("user_id", saved.ID.String()))

	return userToDTO(saved), nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req dto.UpdateUserRequest) (dto.UserDTO, error) {
	const op = "services.UserService.UpdateUser"

	user, err := s.userRepository.GetUserById(ctx, userID)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		if *req.Email != "" && !middlewares.CorrectEmailChecker(*req.Email) {
			return dto.UserDTO{}, fmt.Errorf("%s: %w", op, middlewares.ErrInvalidEmail)
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		if !models.Role(*req.Role).Valid() {
			return dto.UserDTO{}, fmt.Errorf("%s: %w", op, middlewares.ErrInvalidRole)
		}
		user.Role = models.Role(*req.Role)
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return dto.UserDTO{}, fmt.Errorf("%s: %w", op, middlewares.ErrPasswordTooShort)
		}
		passHash, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return dto.UserDTO{}, fmt.Errorf("%s: %w", op, hashErr)
		}
		user.PasswordHash = passHash
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		return dto.UserDTO{}, fmt.Errorf("%s: %w", op, err)
	}

	return userToDTO(updated), nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	const op = "services.UserService.DeleteUser"

	log := s.log.With(
		slog.String("op", op),
		slog.String("user_id", userID.String()),
	)

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Error("failed to delete user", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user deleted")

	return nil
}
