package model

import "time"

// Help post urgency levels. Anything else is accepted and ranked last.
const (
	UrgencyUrgent = "urgent"
	UrgencyMedium = "medium"
	UrgencyLow    = "low"
)

// UrgencyRank maps an urgency level to its listing priority.
func UrgencyRank(level string) int {
	switch level {
	case UrgencyUrgent:
		return 1
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 3
	default:
		return 4
	}
}

// HelpPost is a request for assistance, listed urgent-first.
type HelpPost struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedBy    uint      `json:"created_by" gorm:"not null;index"`
	Details      string    `json:"details" gorm:"type:text;not null"`
	Location     string    `json:"location" gorm:"size:255"`
	UrgencyLevel string    `json:"urgency_level" gorm:"size:20;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HelpPostComment is one entry in a post's append-only comment thread.
type HelpPostComment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	HelpPostID uint      `json:"help_post_id" gorm:"not null;index"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Comment    string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at"`
}

// HelpPostWithMeta is a HelpPost decorated for listing with the requester's
// display name and the comment count.
type HelpPostWithMeta struct {
	ID            uint      `json:"id"`
	CreatedBy     uint      `json:"created_by"`
	RequesterName string    `json:"requester_name"`
	Details       string    `json:"details"`
	Location      string    `json:"location"`
	UrgencyLevel  string    `json:"urgency_level"`
	CreatedAt     time.Time `json:"created_at"`
	CommentCount  int64     `json:"comment_count"`
}

// HelpPostCommentView is a comment decorated with the commenter's name.
type HelpPostCommentView struct {
	ID            uint      `json:"id"`
	HelpPostID    uint      `json:"help_post_id"`
	UserID        uint      `json:"user_id"`
	CommenterName string    `json:"commenter_name"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
