package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records one successful login (access log, not tax-data history)
type LoginTracking struct {
	gorm.Model
	UserID    uint      `gorm:"index" json:"userId"`
	IPAddress string    `json:"ipAddress"`
	Device    string    `json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `gorm:"default:false" json:"-"`
}
