package model

import "time"

// User represents a registered volunteer.
type User struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"size:255;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Gender       string     `json:"gender" gorm:"size:50"`
	DOB          string     `json:"dob" gorm:"size:32"`
	About        string     `json:"about" gorm:"type:text"`
	Skills       StringList `json:"skills" gorm:"type:text"`
	Causes       StringList `json:"causes" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
