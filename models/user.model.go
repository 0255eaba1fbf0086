package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Filing status values accepted through profile updates
const (
	FilingSingle           = "single"
	FilingMarriedJoint     = "married_joint"
	FilingMarriedSeparate  = "married_separate"
	FilingHeadOfHousehold  = "head_of_household"
	FilingQualifyingSpouse = "qualifying_surviving_spouse"
)

// Form completion status values
const (
	FormNotStarted = "not_started"
	FormInProgress = "in_progress"
	FormCompleted  = "completed"
)

// ValidFilingStatuses is the accepted set for the filingStatus field
var ValidFilingStatuses = map[string]bool{
	FilingSingle:           true,
	FilingMarriedJoint:     true,
	FilingMarriedSeparate:  true,
	FilingHeadOfHousehold:  true,
	FilingQualifyingSpouse: true,
}

type User struct {
	gorm.Model
	FirstName         string `gorm:"default:''" json:"firstName"`
	LastName          string `gorm:"default:''" json:"lastName"`
	Email             string `gorm:"unique;not null" json:"email"`
	Password          string `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	FilingStatus      string `gorm:"default:'single'" json:"filingStatus"`
	TaxClassification string `gorm:"default:''" json:"taxClassification"`
	BusinessName      string `gorm:"default:''" json:"businessName"`
	SSN               string `gorm:"default:''" json:"ssn"`
	EIN               string `gorm:"default:''" json:"ein"`

	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`

	// Current derived-document snapshots, one per kind, overwritten wholesale
	// on re-extraction and field-merged on partial update.
	Income     datatypes.JSON `json:"income"`     // W-2 extraction record
	Deductions datatypes.JSON `json:"deductions"` // 1098 record

	W9Uploaded   bool       `gorm:"default:false" json:"w9Uploaded"`
	W9UploadDate *time.Time `json:"w9UploadDate"`
	W9FileName   string     `gorm:"default:''" json:"w9FileName"`
	W2Uploaded   bool       `gorm:"default:false" json:"w2Uploaded"`
	W2UploadDate *time.Time `json:"w2UploadDate"`
	W2FileName   string     `gorm:"default:''" json:"w2FileName"`

	FormCompletionStatus string     `gorm:"default:'not_started'" json:"formCompletionStatus"`
	LastLogin            *time.Time `json:"lastLogin"`
	IsDeleted            bool       `gorm:"default:false" json:"-"`
}

// Address is the structured mailing address stored on the user row
type Address struct {
	Street string `gorm:"default:''" json:"street"`
	City   string `gorm:"default:''" json:"city"`
	State  string `gorm:"default:''" json:"state"`
	Zip    string `gorm:"default:''" json:"zip"`
}

// FullName joins first and last name, skipping empty parts
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
