package model

import "time"

// Team roles, ordered by display rank.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleMember    = "member"
)

// RoleRank maps a role to its roster ordering (admins first). Unknown roles
// sort last.
func RoleRank(role string) int {
	switch role {
	case RoleAdmin:
		return 1
	case RoleModerator:
		return 2
	case RoleMember:
		return 3
	default:
		return 4
	}
}

// Team represents a long-lived volunteer group. Private teams are not
// joinable through the open join path.
type Team struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:100;index"`
	IsPrivate   bool      `json:"is_private" gorm:"not null;default:false"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TeamMembership links a user to a team with a role. The composite unique
// index guarantees at most one row per (team, user) pair.
type TeamMembership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TeamID    uint      `json:"team_id" gorm:"not null;index;uniqueIndex:uk_team_user"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uk_team_user"`
	Role      string    `json:"role" gorm:"size:20;not null;default:'member'"`
	JoinedAt  time.Time `json:"joined_at" gorm:"autoCreateTime"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamWithStats is a Team decorated for listing.
type TeamWithStats struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsPrivate   bool      `json:"is_private"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	MemberCount int64     `json:"member_count"`
	IsMember    bool      `json:"is_member"`
}

// TeamRosterEntry is one member of a team's roster, ordered admin,
// moderator, member, then earliest join first.
type TeamRosterEntry struct {
	UserID   uint      `json:"user_id"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// JoinedTeam is a team as it appears on a user's dashboard.
type JoinedTeam struct {
	TeamID      uint      `json:"team_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	IsPrivate   bool      `json:"is_private"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
	MemberCount int64     `json:"member_count"`
	CreatorName string    `json:"creator_name"`
}
