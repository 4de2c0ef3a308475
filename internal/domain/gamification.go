package domain

import "time"

// Avatar and Progress are created together when a user verifies their
// email. Their inner shape belongs to the gamification feature set; the
// auth workflows only own the creation trigger.

type Avatar struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Appearance    string    `gorm:"type:text;not null;default:'{}'" json:"appearance"`
	UnlockedItems string    `gorm:"type:text;not null;default:'[]'" json:"unlocked_items"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Progress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	XPTotal    int64     `gorm:"not null;default:0" json:"xp_total"`
	Level      int       `gorm:"not null;default:1" json:"level"`
	Points     int64     `gorm:"not null;default:0" json:"points"`
	StreakDays int       `gorm:"not null;default:0" json:"streak_days"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// QuizResponse records the onboarding quiz. Login only checks presence to
// compute the needs_quiz flag.
type QuizResponse struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User          *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Goals         string    `gorm:"type:text" json:"goals"`
	ActivityLevel string    `gorm:"size:32" json:"activity_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
