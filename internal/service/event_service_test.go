package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "handson/internal/errors"
	"handson/internal/model"
	"handson/internal/repository"
)

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) IncrementTotalMembers(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEventRepository) ListWithStats(ctx context.Context, userID uint) ([]model.EventWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.EventWithStats), args.Error(1)
}

func (m *MockEventRepository) CreateMembership(ctx context.Context, membership *model.EventMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockEventRepository) FindMembership(ctx context.Context, eventID, userID uint) (*model.EventMembership, error) {
	args := m.Called(ctx, eventID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.EventMembership), args.Error(1)
}

func (m *MockEventRepository) ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinedEvent), args.Error(1)
}

// WithTransaction runs fn against the mock itself, standing in for the
// transactional repository.
func (m *MockEventRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.EventRepository) error) error {
	return fn(ctx, m)
}

func intPtr(v int) *int { return &v }

func TestEventService_JoinEvent(t *testing.T) {
	tests := []struct {
		name          string
		eventID       uint
		userID        uint
		setupMock     func(*MockEventRepository)
		expectedError error
	}{
		{
			name:    "event not found",
			eventID: 99,
			userID:  1,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEventNotFound,
		},
		{
			name:    "already joined",
			eventID: 1,
			userID:  2,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(&model.Event{ID: 1, MemberLimit: intPtr(10), TotalMembers: 3}, nil)
				m.On("FindMembership", mock.Anything, uint(1), uint(2)).Return(&model.EventMembership{EventID: 1, UserID: 2}, nil)
			},
			expectedError: apperrors.ErrAlreadyJoined,
		},
		{
			name:    "capacity reached",
			eventID: 1,
			userID:  3,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(&model.Event{ID: 1, MemberLimit: intPtr(2), TotalMembers: 2}, nil)
				m.On("FindMembership", mock.Anything, uint(1), uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEventFull,
		},
		{
			name:    "successful join below limit",
			eventID: 1,
			userID:  4,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(&model.Event{ID: 1, MemberLimit: intPtr(2), TotalMembers: 1}, nil)
				m.On("FindMembership", mock.Anything, uint(1), uint(4)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.EventMembership")).Return(nil)
				m.On("IncrementTotalMembers", mock.Anything, uint(1)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "no member limit",
			eventID: 2,
			userID:  5,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(2)).Return(&model.Event{ID: 2, TotalMembers: 500}, nil)
				m.On("FindMembership", mock.Anything, uint(2), uint(5)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.EventMembership")).Return(nil)
				m.On("IncrementTotalMembers", mock.Anything, uint(2)).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:    "unique index backstop maps to already joined",
			eventID: 1,
			userID:  6,
			setupMock: func(m *MockEventRepository) {
				m.On("FindByIDForUpdate", mock.Anything, uint(1)).Return(&model.Event{ID: 1, MemberLimit: intPtr(10), TotalMembers: 1}, nil)
				m.On("FindMembership", mock.Anything, uint(1), uint(6)).Return(nil, gorm.ErrRecordNotFound)
				m.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.EventMembership")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyJoined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockEventRepository)
			tt.setupMock(mockRepo)

			svc := NewEventService(mockRepo, nil)
			membership, err := svc.JoinEvent(context.Background(), tt.eventID, tt.userID, "2026-09-10")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, membership)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, membership)
				assert.Equal(t, tt.eventID, membership.EventID)
				assert.Equal(t, tt.userID, membership.UserID)
				assert.Equal(t, "2026-09-10", membership.JoinDate)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// fakeEventRepo is a stateful in-memory repository for exercising admission
// sequences end to end.
type fakeEventRepo struct {
	events      map[uint]*model.Event
	memberships map[[2]uint]*model.EventMembership
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:      make(map[uint]*model.Event),
		memberships: make(map[[2]uint]*model.EventMembership),
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	if event.ID == 0 {
		event.ID = uint(len(f.events) + 1)
	}
	copied := *event
	f.events[event.ID] = &copied
	return nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeEventRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Event, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeEventRepo) IncrementTotalMembers(ctx context.Context, id uint) error {
	event, ok := f.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	event.TotalMembers++
	return nil
}

func (f *fakeEventRepo) ListWithStats(ctx context.Context, userID uint) ([]model.EventWithStats, error) {
	return nil, nil
}

func (f *fakeEventRepo) CreateMembership(ctx context.Context, m *model.EventMembership) error {
	key := [2]uint{m.EventID, m.UserID}
	if _, exists := f.memberships[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	copied := *m
	f.memberships[key] = &copied
	return nil
}

func (f *fakeEventRepo) FindMembership(ctx context.Context, eventID, userID uint) (*model.EventMembership, error) {
	m, ok := f.memberships[[2]uint{eventID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeEventRepo) ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.EventRepository) error) error {
	return fn(ctx, f)
}

func TestEventService_JoinEvent_AdmissionSequence(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)
	ctx := context.Background()

	repo.events[1] = &model.Event{ID: 1, Title: "Beach Cleanup", Date: "2026-09-20", MemberLimit: intPtr(2)}

	// A and B fill the event, C is rejected, and the counter sticks at 2.
	_, err := svc.JoinEvent(ctx, 1, 10, "2026-09-11")
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.events[1].TotalMembers)

	_, err = svc.JoinEvent(ctx, 1, 11, "2026-09-12")
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.events[1].TotalMembers)

	_, err = svc.JoinEvent(ctx, 1, 12, "2026-09-13")
	assert.ErrorIs(t, err, apperrors.ErrEventFull)
	assert.Equal(t, 2, repo.events[1].TotalMembers)
	assert.Len(t, repo.memberships, 2)

	// Repeating an admitted join changes nothing.
	_, err = svc.JoinEvent(ctx, 1, 10, "2026-09-14")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyJoined)
	assert.Equal(t, 2, repo.events[1].TotalMembers)
	assert.Len(t, repo.memberships, 2)
}

func TestEventService_CreateEvent(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)

	event := &model.Event{
		Title:       "Blood Donation Camp",
		Details:     "Quarterly donation drive.",
		Date:        "2026-10-01",
		Location:    "City Hospital",
		StartTime:   "09:00",
		EndTime:     "14:00",
		Category:    "health",
		MemberLimit: intPtr(30),
		CreatedBy:   7,
	}

	created, membership, err := svc.CreateEvent(context.Background(), event)
	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.NotNil(t, membership)

	// The creator counts toward capacity and is joined on the event's date.
	assert.Equal(t, 1, created.TotalMembers)
	assert.Equal(t, created.ID, membership.EventID)
	assert.Equal(t, uint(7), membership.UserID)
	assert.Equal(t, "2026-10-01", membership.JoinDate)
	assert.Len(t, repo.memberships, 1)
}

func TestEventService_CreateEvent_InvalidLimit(t *testing.T) {
	svc := NewEventService(newFakeEventRepo(), nil)

	_, _, err := svc.CreateEvent(context.Background(), &model.Event{
		Title:       "Zero capacity",
		Date:        "2026-10-01",
		MemberLimit: intPtr(0),
		CreatedBy:   1,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestEventService_GetEvent(t *testing.T) {
	repo := newFakeEventRepo()
	repo.events[1] = &model.Event{ID: 1, Title: "Beach Cleanup", Date: "2026-09-20", TotalMembers: 3}
	svc := NewEventService(repo, nil)

	event, err := svc.GetEvent(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Beach Cleanup", event.Title)
	assert.Equal(t, 3, event.TotalMembers)

	_, err = svc.GetEvent(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventService_CheckUserJoined(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, nil)
	ctx := context.Background()

	repo.events[1] = &model.Event{ID: 1, MemberLimit: intPtr(5)}
	_, err := svc.JoinEvent(ctx, 1, 3, "2026-09-15")
	assert.NoError(t, err)

	membership, joined, err := svc.CheckUserJoined(ctx, 1, 3)
	assert.NoError(t, err)
	assert.True(t, joined)
	assert.Equal(t, "2026-09-15", membership.JoinDate)

	membership, joined, err = svc.CheckUserJoined(ctx, 1, 4)
	assert.NoError(t, err)
	assert.False(t, joined)
	assert.Nil(t, membership)
}
