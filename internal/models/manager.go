package models

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Manager is the adult account that owns recipients. Its ID is the user id
// issued by the auth provider.
type Manager struct {
	ID       string `json:"id" gorm:"primaryKey" example:"3f0f5ad1-2c0e-4de8-9a4d-6f1cfa0b4c5e"`
	Email    string `json:"email" example:"parent@example.com"`
	FullName string `json:"fullName" example:"Alex Doe"`
	Timestamps

	Recipients []Recipient `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// ManagerProfile is the identity information the auth provider vouches for.
type ManagerProfile struct {
	ID       string
	Email    string
	FullName string
}

// EnsureManager creates the manager profile if it does not exist yet and
// returns the stored profile. Existing profiles are never overwritten.
func EnsureManager(db *gorm.DB, profile ManagerProfile) (Manager, error) {
	if profile.ID == "" {
		return Manager{}, invalid("id", "the manager id must not be empty")
	}

	manager := Manager{
		ID:       profile.ID,
		Email:    profile.Email,
		FullName: profile.FullName,
	}

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&manager).Error
	if err != nil {
		return Manager{}, err
	}

	err = db.First(&manager, "id = ?", profile.ID).Error
	if err != nil {
		return Manager{}, err
	}

	return manager, nil
}
