package models

import (
	"gorm.io/gorm"
)

// Dependent is a person claimed on the owning user's filing. Rows only exist
// under a user and are removed with it.
type Dependent struct {
	gorm.Model
	UserID       uint   `gorm:"not null;index" json:"userId"`
	Name         string `gorm:"not null" json:"name"`
	Relationship string `gorm:"default:''" json:"relationship"`
	DateOfBirth  string `gorm:"default:''" json:"dateOfBirth"` // YYYY-MM-DD
	SSN          string `gorm:"default:''" json:"ssn"`
	IsDeleted    bool   `gorm:"default:false" json:"-"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
