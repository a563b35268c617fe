package repository

import (
	"context"

	"gorm.io/gorm"

	"handson/internal/model"
)

// TeamRepository defines team and team-membership persistence operations.
type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	FindByID(ctx context.Context, id uint) (*model.Team, error)
	ListWithStats(ctx context.Context, userID uint) ([]model.TeamWithStats, error)
	CreateMembership(ctx context.Context, m *model.TeamMembership) error
	IsMember(ctx context.Context, teamID, userID uint) (bool, error)
	CountMembers(ctx context.Context, teamID uint) (int64, error)
	ListRoster(ctx context.Context, teamID uint) ([]model.TeamRosterEntry, error)
	ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedTeam, error)
	// WithTransaction executes fn against a transactional repository.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TeamRepository) error) error
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

// Create creates a new team.
func (r *teamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Create(team).Error
}

// FindByID finds a team by ID.
func (r *teamRepository) FindByID(ctx context.Context, id uint) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// ListWithStats returns all teams newest first, each decorated with the
// member count and whether userID belongs to it.
func (r *teamRepository) ListWithStats(ctx context.Context, userID uint) ([]model.TeamWithStats, error) {
	var rows []model.TeamWithStats
	err := r.db.WithContext(ctx).Model(&model.Team{}).
		Select(`teams.id, teams.name, teams.description, teams.category, teams.is_private,
			teams.created_by, teams.created_at,
			(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = teams.id) AS member_count,
			EXISTS(SELECT 1 FROM team_memberships m2 WHERE m2.team_id = teams.id AND m2.user_id = ?) AS is_member`,
			userID).
		Order("teams.created_at DESC, teams.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateMembership inserts one membership row. The uk_team_user unique
// index rejects duplicates at the storage layer.
func (r *teamRepository) CreateMembership(ctx context.Context, m *model.TeamMembership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// IsMember reports whether (teamID, userID) has a membership row.
func (r *teamRepository) IsMember(ctx context.Context, teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// CountMembers returns the team's membership count.
func (r *teamRepository) CountMembers(ctx context.Context, teamID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TeamMembership{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

// ListRoster returns a team's members ordered admin, moderator, member,
// then earliest join first.
func (r *teamRepository) ListRoster(ctx context.Context, teamID uint) ([]model.TeamRosterEntry, error) {
	var rows []model.TeamRosterEntry
	err := r.db.WithContext(ctx).Table("team_memberships").
		Select("team_memberships.user_id, users.name, team_memberships.role, team_memberships.joined_at").
		Joins("JOIN users ON users.id = team_memberships.user_id").
		Where("team_memberships.team_id = ?", teamID).
		Order(`CASE team_memberships.role
			WHEN 'admin' THEN 1
			WHEN 'moderator' THEN 2
			WHEN 'member' THEN 3
			ELSE 4 END,
			team_memberships.joined_at ASC, team_memberships.id ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListJoinedByUser returns the teams a user belongs to, newest join first,
// with member counts and the creator's display name.
func (r *teamRepository) ListJoinedByUser(ctx context.Context, userID uint) ([]model.JoinedTeam, error) {
	var rows []model.JoinedTeam
	err := r.db.WithContext(ctx).Table("team_memberships").
		Select(`team_memberships.team_id, teams.name, teams.description, teams.category,
			teams.is_private, team_memberships.role, team_memberships.joined_at,
			(SELECT COUNT(*) FROM team_memberships m WHERE m.team_id = teams.id) AS member_count,
			creators.name AS creator_name`).
		Joins("JOIN teams ON teams.id = team_memberships.team_id").
		Joins("JOIN users creators ON creators.id = teams.created_by").
		Where("team_memberships.user_id = ?", userID).
		Order("team_memberships.joined_at DESC, team_memberships.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WithTransaction executes a function within a database transaction.
func (r *teamRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo TeamRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &teamRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
