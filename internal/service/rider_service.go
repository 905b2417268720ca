package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashir13-debug/bites-tracking/internal/config"
	"github.com/hashir13-debug/bites-tracking/internal/model"
	"github.com/hashir13-debug/bites-tracking/internal/repository"
	"github.com/hashir13-debug/bites-tracking/internal/utils"

	log "github.com/sirupsen/logrus"
)

// CodeSource yields candidate rider codes
type CodeSource interface {
	Next() string
}

// RiderService owns the rider lifecycle: registration, dispatch, status
// reports and removal
type RiderService interface {
	AddRider(ctx context.Context, name string) (*model.Rider, error)
	ListRiders(ctx context.Context) ([]model.Rider, error)
	SetOnRoute(ctx context.Context, code string) error
	UpdateStatus(ctx context.Context, code, status, clientID string) (*model.Rider, error)
	DeleteRider(ctx context.Context, code string) error
}

type riderService struct {
	repo     repository.RiderRepository
	clock    *utils.Clock
	codes    CodeSource
	cooldown time.Duration
	attempts int
	locks    *keyLock
}

// NewRiderService creates a new RiderService
func NewRiderService(repo repository.RiderRepository, cfg config.RiderConfig, clock *utils.Clock, codes CodeSource) RiderService {
	attempts := cfg.CodeAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &riderService{
		repo:     repo,
		clock:    clock,
		codes:    codes,
		cooldown: cfg.Cooldown,
		attempts: attempts,
		locks:    newKeyLock(),
	}
}

// AddRider registers a rider under a freshly drawn code, redrawing when the
// code is already taken.
func (s *riderService) AddRider(ctx context.Context, name string) (*model.Rider, error) {
	for i := 0; i < s.attempts; i++ {
		rider := model.NewRider(name, s.codes.Next(), s.clock.UTC())
		err := s.repo.Create(ctx, rider)
		if err == nil {
			log.WithFields(log.Fields{"code": rider.Code, "name": name}).Info("rider registered")
			return rider, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to create rider in repo: %w", err)
		}
		log.WithField("code", rider.Code).Debug("rider code taken, drawing another")
	}
	return nil, ErrCodeSpaceExhausted
}

func (s *riderService) ListRiders(ctx context.Context) ([]model.Rider, error) {
	riders, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list riders: %w", err)
	}
	return riders, nil
}

// SetOnRoute dispatches a rider. The cooldown does not apply here and an
// unknown code is silently ignored.
func (s *riderService) SetOnRoute(ctx context.Context, code string) error {
	updated, err := s.repo.SetOnRoute(ctx, code, s.clock.Display(s.clock.Now()))
	if err != nil {
		return fmt.Errorf("failed to set rider on route: %w", err)
	}
	if !updated {
		log.WithField("code", code).Debug("on-route request for unknown rider code ignored")
	}
	return nil
}

// UpdateStatus applies a rider's self-reported status. At most one update per
// cooldown window is accepted for a code, measured from the last accepted one.
func (s *riderService) UpdateStatus(ctx context.Context, code, status, clientID string) (*model.Rider, error) {
	unlock := s.locks.Lock(code)
	defer unlock()

	rider, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find rider for status update: %w", err)
	}
	if rider == nil {
		return nil, ErrRiderNotFound
	}

	now := s.clock.UTC()
	if cerr := s.checkCooldown(rider, now); cerr != nil {
		return nil, cerr
	}

	if rider.DeviceInfo == model.DeviceNotRegistered {
		rider.DeviceInfo = clientID
	}
	rider.Status = status
	rider.RTime = s.clock.Display(now)
	rider.LastClickAt = now

	accepted, err := s.repo.UpdateStatus(ctx, rider, now.Add(-s.cooldown))
	if err != nil {
		return nil, fmt.Errorf("failed to update rider status in repo: %w", err)
	}
	if !accepted {
		// Another writer got in between the read and the conditional update.
		current, ferr := s.repo.FindByCode(ctx, code)
		if ferr != nil {
			return nil, fmt.Errorf("failed to reload rider after rejected update: %w", ferr)
		}
		if current == nil {
			return nil, ErrRiderNotFound
		}
		if cerr := s.checkCooldown(current, now); cerr != nil {
			return nil, cerr
		}
		return nil, &CooldownError{Window: s.cooldown}
	}

	log.WithFields(log.Fields{"code": code, "status": status}).Debug("rider status updated")
	return rider, nil
}

func (s *riderService) checkCooldown(rider *model.Rider, now time.Time) *CooldownError {
	next := rider.NextUpdateAt(s.cooldown)
	if now.Before(next) {
		return &CooldownError{Window: s.cooldown, Remaining: next.Sub(now)}
	}
	return nil
}

// DeleteRider removes a rider; unknown codes are not an error
func (s *riderService) DeleteRider(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete rider in repo: %w", err)
	}
	return nil
}
