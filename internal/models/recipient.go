package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Recipient is a child profile owned by a manager.
type Recipient struct {
	DefaultModel
	ManagerID       string          `json:"managerId" gorm:"index;not null"`
	Name            string          `json:"name"`
	AllowanceAmount decimal.Decimal `json:"allowanceAmount" gorm:"type:DECIMAL(20,8)"`
	AvatarURL       string          `json:"avatarUrl"`
	Active          bool            `json:"active"`
	Archived        bool            `json:"archived"`

	Categories    []AllowanceCategory `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Distributions []Distribution      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Transactions  []Transaction       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Causes        []CharitableCause   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (r *Recipient) BeforeSave(_ *gorm.DB) error {
	r.Name = strings.TrimSpace(r.Name)
	r.AvatarURL = strings.TrimSpace(r.AvatarURL)
	return nil
}

// Balances returns the category balances. The categories must be preloaded.
func (r Recipient) Balances() (Amounts, error) {
	return amountsOf(r.Categories)
}

// RecipientCreate is the input for CreateRecipient.
type RecipientCreate struct {
	Name            string
	AllowanceAmount decimal.Decimal
	AvatarURL       string
}

func (c RecipientCreate) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("name", "the recipient name must not be empty")
	}

	if c.AllowanceAmount.IsNegative() {
		return invalid("allowanceAmount", "the allowance amount must not be negative")
	}

	return nil
}

// CreateRecipient creates a recipient together with its four empty
// categories.
func CreateRecipient(db *gorm.DB, managerID string, create RecipientCreate) (Recipient, error) {
	if err := create.validate(); err != nil {
		return Recipient{}, err
	}

	recipient := Recipient{
		ManagerID:       managerID,
		Name:            create.Name,
		AllowanceAmount: create.AllowanceAmount,
		AvatarURL:       create.AvatarURL,
		Active:          true,
	}

	for _, t := range CategoryTypes {
		recipient.Categories = append(recipient.Categories, AllowanceCategory{
			CategoryType: t,
			Balance:      decimal.Zero,
		})
	}

	err := Atomic(db, func(tx *gorm.DB) error {
		return tx.Create(&recipient).Error
	})
	if err != nil {
		return Recipient{}, err
	}

	return recipient, nil
}

// recipientOf loads a recipient owned by managerID.
func recipientOf(db *gorm.DB, managerID string, id uuid.UUID) (Recipient, error) {
	var recipient Recipient
	err := db.
		Where("recipients.id = ? AND recipients.manager_id = ?", id, managerID).
		First(&recipient).Error
	if err != nil {
		return Recipient{}, err
	}

	return recipient, nil
}

// activeRecipientOf loads an active recipient owned by managerID.
func activeRecipientOf(db *gorm.DB, managerID string, id uuid.UUID) (Recipient, error) {
	recipient, err := recipientOf(db, managerID, id)
	if err != nil {
		return Recipient{}, err
	}

	if !recipient.Active {
		return Recipient{}, fmt.Errorf("%w active recipient matching your query", ErrResourceNotFound)
	}

	return recipient, nil
}

// GetRecipient returns a recipient with its categories.
func GetRecipient(db *gorm.DB, managerID string, id uuid.UUID) (Recipient, error) {
	var recipient Recipient
	err := db.
		Preload("Categories").
		Where("recipients.id = ? AND recipients.manager_id = ?", id, managerID).
		First(&recipient).Error
	if err != nil {
		return Recipient{}, err
	}

	return recipient, nil
}

// ListRecipients returns the active recipients of a manager ordered by name.
// Archived recipients are only included when includeArchived is set.
func ListRecipients(db *gorm.DB, managerID string, includeArchived bool) ([]Recipient, error) {
	q := db.
		Preload("Categories").
		Where(&Recipient{ManagerID: managerID, Active: true}).
		Order("recipients.name ASC, recipients.created_at ASC")

	if !includeArchived {
		q = q.Where("recipients.archived = ?", false)
	}

	var recipients []Recipient
	err := q.Find(&recipients).Error
	if err != nil {
		return nil, err
	}

	return recipients, nil
}

// RecipientProfile holds the editable profile fields.
type RecipientProfile struct {
	Name            string
	AllowanceAmount decimal.Decimal
	AvatarURL       string
}

func (p RecipientProfile) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", "the recipient name must not be empty")
	}

	if !p.AllowanceAmount.IsPositive() {
		return invalid("allowanceAmount", "the allowance amount must be greater than 0")
	}

	return nil
}

// UpdateRecipientProfile replaces name, allowance and avatar of an active
// recipient. An empty avatar URL removes the avatar.
func UpdateRecipientProfile(db *gorm.DB, managerID string, id uuid.UUID, profile RecipientProfile) (Recipient, error) {
	if err := profile.validate(); err != nil {
		return Recipient{}, err
	}

	recipient, err := activeRecipientOf(db, managerID, id)
	if err != nil {
		return Recipient{}, err
	}

	err = db.Model(&recipient).
		Select("Name", "AllowanceAmount", "AvatarURL").
		Updates(Recipient{
			Name:            strings.TrimSpace(profile.Name),
			AllowanceAmount: profile.AllowanceAmount,
			AvatarURL:       strings.TrimSpace(profile.AvatarURL),
		}).Error
	if err != nil {
		return Recipient{}, err
	}

	return GetRecipient(db, managerID, id)
}

// SetArchived sets the archived flag of a recipient.
func SetArchived(db *gorm.DB, managerID string, id uuid.UUID, archived bool) (Recipient, error) {
	recipient, err := recipientOf(db, managerID, id)
	if err != nil {
		return Recipient{}, err
	}

	err = db.Model(&recipient).Update("archived", archived).Error
	if err != nil {
		return Recipient{}, err
	}

	return GetRecipient(db, managerID, id)
}

// ResetAccount zeroes all balances, resets every cause and deletes the
// complete transaction and distribution history of a recipient.
func ResetAccount(db *gorm.DB, managerID string, id uuid.UUID) (string, error) {
	recipient, err := activeRecipientOf(db, managerID, id)
	if err != nil {
		return "", err
	}

	err = Atomic(db, func(tx *gorm.DB) error {
		result := tx.Model(&AllowanceCategory{}).
			Where("recipient_id = ?", recipient.ID).
			Update("balance", decimal.Zero)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(CategoryTypes)) {
			return fmt.Errorf("%w: balance reset affected %d categories", ErrStorage, result.RowsAffected)
		}

		err := tx.Model(&CharitableCause{}).
			Where("recipient_id = ?", recipient.ID).
			Updates(map[string]any{
				"current_amount": decimal.Zero,
				"is_completed":   false,
				"completed_at":   nil,
			}).Error
		if err != nil {
			return err
		}

		err = tx.Where("recipient_id = ?", recipient.ID).Delete(&Transaction{}).Error
		if err != nil {
			return err
		}

		return tx.Where("recipient_id = ?", recipient.ID).Delete(&Distribution{}).Error
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s's account has been reset", recipient.Name), nil
}
