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

// AdminService manages admin accounts
type AdminService interface {
	ListAdmins(ctx context.Context) ([]model.AdminSummary, error)
	AddAdmin(ctx context.Context, email, password string) (*model.User, error)
	DeleteAdmin(ctx context.Context, id int) error
}

type adminService struct {
	userRepo repository.UserRepository
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

// ListAdmins returns every admin. The superadmin is not listed.
func (s *adminService) ListAdmins(ctx context.Context) ([]model.AdminSummary, error) {
	users, err := s.userRepo.ListByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	admins := make([]model.AdminSummary, 0, len(users))
	for i := range users {
		admins = append(admins, users[i].Summary())
	}
	return admins, nil
}

func (s *adminService) AddAdmin(ctx context.Context, email, password string) (*model.User, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		LastDevice:   model.DeviceNoLogin,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAdminAlreadyExists
		}
		return nil, fmt.Errorf("failed to create admin in repository: %w", err)
	}
	return user, nil
}

// DeleteAdmin removes an admin. Unknown ids and the superadmin are left alone
// without reporting an error.
func (s *adminService) DeleteAdmin(ctx context.Context, id int) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find admin for deletion: %w", err)
	}
	if user == nil {
		return nil
	}
	if user.Role == model.RoleSuperadmin {
		log.WithField("user_id", id).Warn("refusing to delete the superadmin account")
		return nil
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete admin in repo: %w", err)
	}
	return nil
}
