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

const eventCacheTTL = 5 * time.Minute

// EventService handles event creation and capacity-bounded joining.
type EventService interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, *model.EventMembership, error)
	JoinEvent(ctx context.Context, eventID, userID uint, joinDate string) (*model.EventMembership, error)
	GetEvent(ctx context.Context, id uint) (*model.Event, error)
	ListEvents(ctx context.Context, userID uint) ([]model.EventWithStats, error)
	CheckUserJoined(ctx context.Context, eventID, userID uint) (*model.EventMembership, bool, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	cache     *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, cache *cache.Client) EventService {
	return &eventService{eventRepo: eventRepo, cache: cache}
}

func (s *eventService) cacheKey(id uint) string {
	return fmt.Sprintf("event:%d", id)
}

// CreateEvent inserts the event and the creator's self-join membership in one
// transaction. The creator counts toward capacity: TotalMembers starts at 1
// and the creator's row is an ordinary membership with the event's own date
// as its join date.
func (s *eventService) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, *model.EventMembership, error) {
	if event.MemberLimit != nil && *event.MemberLimit < 1 {
		return nil, nil, apperrors.ErrInvalidInput
	}

	membership := &model.EventMembership{
		UserID:   event.CreatedBy,
		JoinDate: event.Date,
	}

	err := s.eventRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.EventRepository) error {
		event.TotalMembers = 1
		if err := txRepo.Create(ctx, event); err != nil {
			return err
		}
		membership.EventID = event.ID
		return txRepo.CreateMembership(ctx, membership)
	})
	if err != nil {
		return nil, nil, err
	}

	return event, membership, nil
}

// JoinEvent admits a user into an event's membership set, keeping the
// denormalized counter in lockstep. The event row is locked for the duration
// of the transaction, which serializes concurrent joins against the same
// event: the duplicate and capacity checks, the membership insert, and the
// counter increment are one atomic unit.
func (s *eventService) JoinEvent(ctx context.Context, eventID, userID uint, joinDate string) (*model.EventMembership, error) {
	membership := &model.EventMembership{
		EventID:  eventID,
		UserID:   userID,
		JoinDate: joinDate,
	}

	err := s.eventRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.EventRepository) error {
		event, err := txRepo.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrEventNotFound
			}
			return err
		}

		if _, err := txRepo.FindMembership(ctx, eventID, userID); err == nil {
			return apperrors.ErrAlreadyJoined
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if event.MemberLimit != nil && event.TotalMembers >= *event.MemberLimit {
			return apperrors.ErrEventFull
		}

		if err := txRepo.CreateMembership(ctx, membership); err != nil {
			// unique-index backstop for the duplicate rule
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrAlreadyJoined
			}
			return err
		}

		return txRepo.IncrementTotalMembers(ctx, eventID)
	})
	if err != nil {
		return nil, err
	}

	// The counter changed, drop the cached row
	_ = s.cache.Delete(ctx, s.cacheKey(eventID))

	return membership, nil
}

// GetEvent retrieves a single event with caching. Joins invalidate the
// cached row so the counter stays fresh.
func (s *eventService) GetEvent(ctx context.Context, id uint) (*model.Event, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Event
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(event); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, eventCacheTTL)
	}
	return event, nil
}

// ListEvents returns all events decorated with registration counts and the
// requesting user's join status. userID 0 means anonymous.
func (s *eventService) ListEvents(ctx context.Context, userID uint) ([]model.EventWithStats, error) {
	return s.eventRepo.ListWithStats(ctx, userID)
}

// CheckUserJoined reports whether a membership row exists for the pair.
func (s *eventService) CheckUserJoined(ctx context.Context, eventID, userID uint) (*model.EventMembership, bool, error) {
	membership, err := s.eventRepo.FindMembership(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return membership, true, nil
}
