package service

import (
	"context"
	"errors"

	"socialposts/internal/models"
	"socialposts/internal/repository"
	"socialposts/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const msgBadCredentials = "No active account found with the given credentials"

type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	// dummyHash keeps failed logins for unknown emails as slow as wrong passwords.
	dummyHash []byte
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return NewUserServiceWithCost(userRepo, bcrypt.DefaultCost)
}

// NewUserServiceWithCost lets tests use bcrypt.MinCost.
func NewUserServiceWithCost(userRepo repository.UserRepository, cost int) *UserService {
	dummy, _ := bcrypt.GenerateFromPassword([]byte("socialposts-dummy-password"), cost)
	return &UserService{userRepo: userRepo, bcryptCost: cost, dummyHash: dummy}
}

// Register creates an account for a normalised email.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{Email: email, Password: string(hash)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user whose credentials match.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			return nil, models.NewUnauthorizedError(msgBadCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError(msgBadCredentials)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword sets a new password for the actor.
func (s *UserService) ChangePassword(ctx context.Context, actor Actor, password string) error {
	if err := RequireActor(actor); err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.NewValidationError(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	return s.userRepo.UpdatePassword(ctx, actor.UserID, string(hash))
}
