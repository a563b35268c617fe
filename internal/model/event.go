package model

import "time"

// Event represents a scheduled volunteer activity with an optional capacity.
type Event struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"size:255;not null"`
	Details      string    `json:"details" gorm:"type:text"`
	Date         string    `json:"date" gorm:"size:32;not null;index"`
	Location     string    `json:"location" gorm:"size:255"`
	StartTime    string    `json:"start_time" gorm:"size:16"`
	EndTime      string    `json:"end_time" gorm:"size:16"`
	Category     string    `json:"category" gorm:"size:100;index"`
	MemberLimit  *int      `json:"member_limit" gorm:"default:null"`
	TotalMembers int       `json:"total_member" gorm:"not null;default:0"`
	CreatedBy    uint      `json:"created_by" gorm:"not null;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// EventMembership links a user to an event. The composite unique index
// guarantees a user joins a given event at most once; the capacity check
// happens under a row lock on the event (see EventService.JoinEvent).
type EventMembership struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	EventID   uint      `json:"event_id" gorm:"not null;index;uniqueIndex:uk_event_user"`
	UserID    uint      `json:"user_id" gorm:"not null;index;uniqueIndex:uk_event_user"`
	JoinDate  string    `json:"join_date" gorm:"size:32;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// EventWithStats is an Event decorated for listing: the live membership count
// and whether the requesting user has joined.
type EventWithStats struct {
	ID                   uint   `json:"id"`
	Title                string `json:"title"`
	Details              string `json:"details"`
	Date                 string `json:"date"`
	Location             string `json:"location"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	Category             string `json:"category"`
	MemberLimit          *int   `json:"member_limit"`
	TotalMembers         int    `json:"total_member"`
	CreatedBy            uint   `json:"created_by"`
	RegisteredVolunteers int64  `json:"registered_volunteers"`
	UserJoined           bool   `json:"user_joined"`
}

// JoinedEvent is an event as it appears on a user's dashboard, newest join
// first, with the live registration count.
type JoinedEvent struct {
	EventID              uint   `json:"event_id"`
	Title                string `json:"title"`
	Date                 string `json:"date"`
	Location             string `json:"location"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	Category             string `json:"category"`
	JoinDate             string `json:"join_date"`
	RegisteredVolunteers int64  `json:"registered_volunteers"`
}
