package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "handson/internal/errors"
	"handson/internal/model"
	"handson/internal/repository"
)

// TeamDetail is a team with its decoration and full roster.
type TeamDetail struct {
	Team    model.TeamWithStats     `json:"team"`
	Members []model.TeamRosterEntry `json:"members"`
}

// TeamService handles team creation, open joins, and roster reads.
type TeamService interface {
	CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error)
	JoinTeam(ctx context.Context, teamID, userID uint) (*model.TeamMembership, error)
	ListTeams(ctx context.Context, userID uint) ([]model.TeamWithStats, error)
	GetTeam(ctx context.Context, teamID, userID uint) (*TeamDetail, error)
}

type teamService struct {
	teamRepo repository.TeamRepository
}

// NewTeamService creates a new team service.
func NewTeamService(teamRepo repository.TeamRepository) TeamService {
	return &teamService{teamRepo: teamRepo}
}

// CreateTeam inserts the team and the creator's admin membership in one
// transaction.
func (s *teamService) CreateTeam(ctx context.Context, team *model.Team) (*model.Team, error) {
	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.TeamRepository) error {
		if err := txRepo.Create(ctx, team); err != nil {
			return err
		}
		return txRepo.CreateMembership(ctx, &model.TeamMembership{
			TeamID: team.ID,
			UserID: team.CreatedBy,
			Role:   model.RoleAdmin,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// JoinTeam admits a user into a public team. Private teams are never
// joinable through this path, and a user joins a given team at most once;
// the unique index backstops the duplicate check against concurrent joins.
func (s *teamService) JoinTeam(ctx context.Context, teamID, userID uint) (*model.TeamMembership, error) {
	membership := &model.TeamMembership{
		TeamID: teamID,
		UserID: userID,
		Role:   model.RoleMember,
	}

	err := s.teamRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.TeamRepository) error {
		team, err := txRepo.FindByID(ctx, teamID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrTeamNotFound
			}
			return err
		}

		if team.IsPrivate {
			return apperrors.ErrPrivateTeam
		}

		isMember, err := txRepo.IsMember(ctx, teamID, userID)
		if err != nil {
			return err
		}
		if isMember {
			return apperrors.ErrAlreadyMember
		}

		if err := txRepo.CreateMembership(ctx, membership); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.ErrAlreadyMember
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// ListTeams returns all teams decorated with member counts and the
// requesting user's membership status. userID 0 means anonymous.
func (s *teamService) ListTeams(ctx context.Context, userID uint) ([]model.TeamWithStats, error) {
	return s.teamRepo.ListWithStats(ctx, userID)
}

// GetTeam returns the team, its decoration, and the roster ordered by role
// rank then join time.
func (s *teamService) GetTeam(ctx context.Context, teamID, userID uint) (*TeamDetail, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, err
	}

	memberCount, err := s.teamRepo.CountMembers(ctx, teamID)
	if err != nil {
		return nil, err
	}

	isMember := false
	if userID != 0 {
		isMember, err = s.teamRepo.IsMember(ctx, teamID, userID)
		if err != nil {
			return nil, err
		}
	}

	members, err := s.teamRepo.ListRoster(ctx, teamID)
	if err != nil {
		return nil, err
	}

	return &TeamDetail{
		Team: model.TeamWithStats{
			ID:          team.ID,
			Name:        team.Name,
			Description: team.Description,
			Category:    team.Category,
			IsPrivate:   team.IsPrivate,
			CreatedBy:   team.CreatedBy,
			CreatedAt:   team.CreatedAt,
			MemberCount: memberCount,
			IsMember:    isMember,
		},
		Members: members,
	}, nil
}
