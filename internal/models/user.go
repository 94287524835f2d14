package models

import "time"

type User struct {
	BaseModel
	Name          string   `gorm:"not null"`
	Email         string   `gorm:"uniqueIndex;not null"`
	PasswordHash  string   `gorm:"not null"`
	Role          UserRole `gorm:"type:varchar(20);not null"`
	IsVerified    bool     `gorm:"default:false"`
	ResetToken    string
	ResetTokenExp *time.Time

	// Relations
	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
