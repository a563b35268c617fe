package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"handson/internal/cache"
	apperrors "handson/internal/errors"
	"handson/internal/model"
	"handson/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserProfile is the dashboard aggregate: base profile fields plus the
// user's joined events and teams, both with live counts.
type UserProfile struct {
	User         *model.User         `json:"user"`
	JoinedEvents []model.JoinedEvent `json:"joinedEvents"`
	JoinedTeams  []model.JoinedTeam  `json:"joinedTeams"`
}

// ProfileUpdate carries the mutable profile fields.
type ProfileUpdate struct {
	Name   string
	Gender string
	DOB    string
	About  string
	Skills model.StringList
	Causes model.StringList
}

// UserService exposes profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	GetProfile(ctx context.Context, id uint) (*UserProfile, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	teamRepo  repository.TeamRepository
	cache     *cache.Client
}

// NewUserService builds a UserService over the membership-bearing repositories.
func NewUserService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	teamRepo repository.TeamRepository,
	cache *cache.Client,
) UserService {
	return &userService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		teamRepo:  teamRepo,
		cache:     cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// GetProfile assembles the dashboard view: the user row plus joined events
// and teams, newest joins first. The membership lists are always read live
// so registration counts stay current.
func (s *userService) GetProfile(ctx context.Context, id uint) (*UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	joinedEvents, err := s.eventRepo.ListJoinedByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	joinedTeams, err := s.teamRepo.ListJoinedByUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:         user,
		JoinedEvents: joinedEvents,
		JoinedTeams:  joinedTeams,
	}, nil
}

// UpdateProfile replaces the mutable profile fields and returns the updated
// row. Skills and causes arrive already normalized by the StringList
// decoding (null becomes empty, a bare string becomes a singleton).
func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	if id == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// Existence check up front: a full-row update of identical values
	// reports zero affected rows on MySQL, so rows-affected cannot
	// distinguish "missing" from "unchanged".
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	user := &model.User{
		ID:     id,
		Name:   update.Name,
		Gender: update.Gender,
		DOB:    update.DOB,
		About:  update.About,
		Skills: update.Skills,
		Causes: update.Causes,
	}
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))

	updated, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return updated, nil
}
