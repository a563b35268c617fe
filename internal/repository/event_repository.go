package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"handson/internal/model"
)

// EventRepository defines event and event-membership persistence operations.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error)
	IncrementTotalMembers(ctx context.Context, id uint) error
	ListWithStats(ctx context.Context, userID uint) ([]model.EventWithStats, error)
	CreateMembership(ctx context.Context, m *model.EventMembership) error
	FindMembership(ctx context.Context, eventID, userID uint) (*model.EventMembership, error)
	ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedEvent, error)
	// WithTransaction executes fn against a transactional repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EventRepository) error) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// Create creates a new event.
func (r *eventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByID finds an event by ID.
func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// FindByIDForUpdate finds an event by ID with a row-level lock. Serializes
// concurrent joins against the same event when called inside a transaction.
func (r *eventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// IncrementTotalMembers bumps the denormalized membership counter by one.
func (r *eventRepository) IncrementTotalMembers(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		UpdateColumn("total_members", gorm.Expr("total_members + 1")).Error
}

// ListWithStats returns all events newest-date-first, each decorated with
// the live registration count and whether userID has joined. userID 0 never
// matches a membership, so anonymous callers get user_joined=false.
func (r *eventRepository) ListWithStats(ctx context.Context, userID uint) ([]model.EventWithStats, error) {
	var rows []model.EventWithStats
	err := r.db.WithContext(ctx).Model(&model.Event{}).
		Select(`events.id, events.title, events.details, events.date, events.location,
			events.start_time, events.end_time, events.category, events.member_limit,
			events.total_members, events.created_by,
			(SELECT COUNT(*) FROM event_memberships m WHERE m.event_id = events.id) AS registered_volunteers,
			EXISTS(SELECT 1 FROM event_memberships m2 WHERE m2.event_id = events.id AND m2.user_id = ?) AS user_joined`,
			userID).
		Order("events.date DESC, events.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateMembership inserts one membership row. The uk_event_user unique
// index rejects duplicates at the storage layer.
func (r *eventRepository) CreateMembership(ctx context.Context, m *model.EventMembership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindMembership returns the membership row for (eventID, userID), if any.
func (r *eventRepository) FindMembership(ctx context.Context, eventID, userID uint) (*model.EventMembership, error) {
	var m model.EventMembership
	if err := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListJoinedByUser returns the events a user has joined, newest join first,
// with live registration counts.
func (r *eventRepository) ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedEvent, error) {
	var rows []model.JoinedEvent
	err := r.db.WithContext(ctx).Table("event_memberships").
		Select(`event_memberships.event_id, events.title, events.date, events.location,
			events.start_time, events.end_time, events.category, event_memberships.join_date,
			(SELECT COUNT(*) FROM event_memberships m WHERE m.event_id = events.id) AS registered_volunteers`).
		Joins("JOIN events ON events.id = event_memberships.event_id").
		Where("event_memberships.user_id = ?", userID).
		Order("event_memberships.created_at DESC, event_memberships.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WithTransaction executes a function within a database transaction.
func (r *eventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo EventRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &eventRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
