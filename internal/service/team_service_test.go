package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "handson/internal/errors"
	"handson/internal/model"
	"handson/internal/repository"
)

// MockTeamRepository is a mock implementation of TeamRepository.
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamRepository) ListWithStats(ctx context.Context, userID uint) ([]model.TeamWithStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamWithStats), args.Error(1)
}

func (m *MockTeamRepository) CreateMembership(ctx context.Context, membership *model.TeamMembership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockTeamRepository) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTeamRepository) ListRoster(ctx context.Context, teamID uint) ([]model.TeamRosterEntry, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TeamRosterEntry), args.Error(1)
}

func (m *MockTeamRepository) ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedTeam, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.JoinedTeam), args.Error(1)
}

func (m *MockTeamRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.TeamRepository) error) error {
	return fn(ctx, m)
}

func TestTeamService_JoinTeam(t *testing.T) {
	tests := []struct {
		name          string
		teamID        uint
		userID        uint
		setupMock     func(*MockTeamRepository)
		expectedError error
	}{
		{
			name:   "team not found",
			teamID: 99,
			userID: 1,
			setupMock: func(m *MockTeamRepository) {
				m.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrTeamNotFound,
		},
		{
			name:   "private team rejects join",
			teamID: 1,
			userID: 2,
			setupMock: func(m *MockTeamRepository) {
				m.On("FindByID", mock.Anything, uint(1)).Return(&model.Team{ID: 1, Name: "Crisis Response", IsPrivate: true}, nil)
			},
			expectedError: apperrors.ErrPrivateTeam,
		},
		{
			name:   "already a member",
			teamID: 2,
			userID: 3,
			setupMock: func(m *MockTeamRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.Team{ID: 2, Name: "Green City"}, nil)
				m.On("IsMember", mock.Anything, uint(2), uint(3)).Return(true, nil)
			},
			expectedError: apperrors.ErrAlreadyMember,
		},
		{
			name:   "successful join",
			teamID: 2,
			userID: 4,
			setupMock: func(m *MockTeamRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.Team{ID: 2, Name: "Green City"}, nil)
				m.On("IsMember", mock.Anything, uint(2), uint(4)).Return(false, nil)
				m.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.TeamMembership")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:   "unique index backstop maps to already member",
			teamID: 2,
			userID: 5,
			setupMock: func(m *MockTeamRepository) {
				m.On("FindByID", mock.Anything, uint(2)).Return(&model.Team{ID: 2, Name: "Green City"}, nil)
				m.On("IsMember", mock.Anything, uint(2), uint(5)).Return(false, nil)
				m.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.TeamMembership")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrAlreadyMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTeamRepository)
			tt.setupMock(mockRepo)

			svc := NewTeamService(mockRepo)
			membership, err := svc.JoinTeam(context.Background(), tt.teamID, tt.userID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, membership)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, membership)
				assert.Equal(t, tt.teamID, membership.TeamID)
				assert.Equal(t, tt.userID, membership.UserID)
				assert.Equal(t, model.RoleMember, membership.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTeamService_CreateTeam(t *testing.T) {
	mockRepo := new(MockTeamRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Team")).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Team).ID = 7
	}).Return(nil)

	var captured *model.TeamMembership
	mockRepo.On("CreateMembership", mock.Anything, mock.AnythingOfType("*model.TeamMembership")).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*model.TeamMembership)
	}).Return(nil)

	svc := NewTeamService(mockRepo)
	team, err := svc.CreateTeam(context.Background(), &model.Team{
		Name:        "River Watch",
		Description: "Water quality monitoring.",
		Category:    "environment",
		CreatedBy:   9,
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(7), team.ID)

	// The creator is enrolled as the team admin.
	assert.NotNil(t, captured)
	assert.Equal(t, uint(7), captured.TeamID)
	assert.Equal(t, uint(9), captured.UserID)
	assert.Equal(t, model.RoleAdmin, captured.Role)

	mockRepo.AssertExpectations(t)
}

func TestTeamService_GetTeam(t *testing.T) {
	now := time.Now()
	roster := []model.TeamRosterEntry{
		{UserID: 9, Name: "Maya", Role: model.RoleAdmin},
		{UserID: 4, Name: "Omar", Role: model.RoleModerator},
		{UserID: 5, Name: "Lena", Role: model.RoleMember},
	}

	mockRepo := new(MockTeamRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Team{
		ID: 7, Name: "River Watch", Category: "environment", CreatedBy: 9, CreatedAt: now,
	}, nil)
	mockRepo.On("CountMembers", mock.Anything, uint(7)).Return(int64(3), nil)
	mockRepo.On("IsMember", mock.Anything, uint(7), uint(5)).Return(true, nil)
	mockRepo.On("ListRoster", mock.Anything, uint(7)).Return(roster, nil)

	svc := NewTeamService(mockRepo)
	detail, err := svc.GetTeam(context.Background(), 7, 5)

	assert.NoError(t, err)
	assert.Equal(t, "River Watch", detail.Team.Name)
	assert.Equal(t, int64(3), detail.Team.MemberCount)
	assert.True(t, detail.Team.IsMember)
	assert.Equal(t, roster, detail.Members)

	mockRepo.AssertExpectations(t)
}

func TestTeamService_GetTeam_Anonymous(t *testing.T) {
	mockRepo := new(MockTeamRepository)
	mockRepo.On("FindByID", mock.Anything, uint(7)).Return(&model.Team{ID: 7, Name: "River Watch"}, nil)
	mockRepo.On("CountMembers", mock.Anything, uint(7)).Return(int64(1), nil)
	mockRepo.On("ListRoster", mock.Anything, uint(7)).Return([]model.TeamRosterEntry{}, nil)

	svc := NewTeamService(mockRepo)
	detail, err := svc.GetTeam(context.Background(), 7, 0)

	assert.NoError(t, err)
	assert.False(t, detail.Team.IsMember)

	// IsMember is never queried for anonymous callers.
	mockRepo.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeamService_GetTeam_NotFound(t *testing.T) {
	mockRepo := new(MockTeamRepository)
	mockRepo.On("FindByID", mock.Anything, uint(42)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewTeamService(mockRepo)
	detail, err := svc.GetTeam(context.Background(), 42, 1)

	assert.ErrorIs(t, err, apperrors.ErrTeamNotFound)
	assert.Nil(t, detail)
}
