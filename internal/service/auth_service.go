package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/model"
	"github.com/hashir13-debug/bites-tracking/internal/repository"
	"github.com/hashir13-debug/bites-tracking/internal/utils"

	log "github.com/sirupsen/logrus"
)

// AuthService covers dashboard login, rider code check-in and the
// superadmin bootstrap
type AuthService interface {
	Login(ctx context.Context, email, password, clientID string) (*model.User, error)
	CheckRiderCode(ctx context.Context, code string) (*model.Rider, error)
	EnsureSuperadmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo  repository.UserRepository
	riderRepo repository.RiderRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, riderRepo repository.RiderRepository) AuthService {
	return &authService{
		userRepo:  userRepo,
		riderRepo: riderRepo,
	}
}

// Login checks email and password and records the caller's device
func (s *authService) Login(ctx context.Context, email, password, clientID string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastDevice(ctx, user.ID, clientID); err != nil {
		return nil, fmt.Errorf("failed to record login device: %w", err)
	}
	user.LastDevice = clientID
	return user, nil
}

// CheckRiderCode confirms a rider code exists before a rider acts on it
func (s *authService) CheckRiderCode(ctx context.Context, code string) (*model.Rider, error) {
	rider, err := s.riderRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up rider code: %w", err)
	}
	if rider == nil {
		return nil, ErrRiderNotFound
	}
	return rider, nil
}

// EnsureSuperadmin creates the superadmin account unless one already exists.
// It is safe to call on every start.
func (s *authService) EnsureSuperadmin(ctx context.Context, email, password string) error {
	n, err := s.userRepo.CountByRole(ctx, model.RoleSuperadmin)
	if err != nil {
		return fmt.Errorf("failed to check for superadmin: %w", err)
	}
	if n > 0 {
		log.Debug("superadmin already present, skipping seed")
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleSuperadmin,
		LastDevice:   model.DeviceNoLogin,
		CreatedAt:    time.Now(),
	}
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// Either another instance seeded first or the email is taken by an admin.
		if n, cerr := s.userRepo.CountByRole(ctx, model.RoleSuperadmin); cerr == nil && n > 0 {
			return nil
		}
		return fmt.Errorf("cannot seed superadmin %s: email already in use", email)
	}
	if err != nil {
		return fmt.Errorf("failed to seed superadmin: %w", err)
	}

	log.WithField("email", email).Info("seeded superadmin account")
	return nil
}
