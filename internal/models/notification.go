package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "account_verified", "job_verified", "new_application", "application_decided"
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"job_id": "...", "application_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}
