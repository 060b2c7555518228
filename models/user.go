package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ExperiencePerLevel is how much experience a user needs to advance one level.
const ExperiencePerLevel = 1000

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `json:"name"`
	Role         Role      `gorm:"type:varchar(16);default:user" json:"role"`
	Balance      int64     `gorm:"not null;default:0" json:"balance"` // minor currency units
	Experience   int64     `gorm:"not null;default:0" json:"experience"`
	Level        int       `gorm:"not null;default:1" json:"level"`
	ReferralCode string    `gorm:"uniqueIndex" json:"referral_code"`
	ReferredBy   *uint     `json:"referred_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LevelForExperience derives the level shown on the profile from raw experience.
func LevelForExperience(exp int64) int {
	return int(exp/ExperiencePerLevel) + 1
}
