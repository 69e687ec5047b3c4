package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Distribution records one payout of allowance across the four categories.
type Distribution struct {
	DefaultModel
	RecipientID      uuid.UUID       `json:"recipientId" gorm:"index;not null"`
	ManagerID        string          `json:"managerId" gorm:"index;not null"`
	DistributionDate time.Time       `json:"distributionDate"`
	GiveAmount       decimal.Decimal `json:"giveAmount" gorm:"type:DECIMAL(20,8)"`
	SpendAmount      decimal.Decimal `json:"spendAmount" gorm:"type:DECIMAL(20,8)"`
	SaveAmount       decimal.Decimal `json:"saveAmount" gorm:"type:DECIMAL(20,8)"`
	InvestAmount     decimal.Decimal `json:"investAmount" gorm:"type:DECIMAL(20,8)"`
	TotalAmount      decimal.Decimal `json:"totalAmount" gorm:"type:DECIMAL(20,8)"`
	Notes            string          `json:"notes"`

	Transactions []Transaction `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (d *Distribution) BeforeSave(_ *gorm.DB) error {
	d.Notes = strings.TrimSpace(d.Notes)
	d.DistributionDate = day(d.DistributionDate)
	return nil
}

func (d *Distribution) AfterFind(tx *gorm.DB) error {
	d.DistributionDate = d.DistributionDate.In(time.UTC)
	return d.DefaultModel.AfterFind(tx)
}

// Amounts returns the per-category amounts of the distribution.
func (d Distribution) Amounts() Amounts {
	return Amounts{
		Give:   d.GiveAmount,
		Spend:  d.SpendAmount,
		Save:   d.SaveAmount,
		Invest: d.InvestAmount,
	}
}

// DistributionCreate is the input for Distribute. A zero Date means today.
type DistributionCreate struct {
	RecipientID uuid.UUID
	Date        time.Time
	Amounts     Amounts
	Notes       string
}

func (c DistributionCreate) validate() error {
	for _, t := range CategoryTypes {
		if c.Amounts.Get(t).IsNegative() {
			return invalid(string(t), "individual category amounts cannot be negative")
		}
	}

	if !c.Amounts.Total().IsPositive() {
		return invalid("totalAmount", "the distribution amount must be greater than zero")
	}

	return nil
}

// Distribute pays out allowance to a recipient. The distribution row, the
// four balance credits and one transaction per non-zero amount are written
// in a single unit of work.
func Distribute(db *gorm.DB, managerID string, create DistributionCreate) (Distribution, error) {
	if err := create.validate(); err != nil {
		return Distribution{}, err
	}

	recipient, err := activeRecipientOf(db, managerID, create.RecipientID)
	if err != nil {
		return Distribution{}, err
	}

	date := create.Date
	if date.IsZero() {
		date = time.Now()
	}

	distribution := Distribution{
		RecipientID:      recipient.ID,
		ManagerID:        managerID,
		DistributionDate: day(date),
		GiveAmount:       create.Amounts.Give,
		SpendAmount:      create.Amounts.Spend,
		SaveAmount:       create.Amounts.Save,
		InvestAmount:     create.Amounts.Invest,
		TotalAmount:      create.Amounts.Total(),
		Notes:            create.Notes,
	}

	err = Atomic(db, func(tx *gorm.DB) error {
		if err := tx.Create(&distribution).Error; err != nil {
			return err
		}

		for _, t := range CategoryTypes {
			amount := create.Amounts.Get(t)
			if amount.IsZero() {
				continue
			}

			balance, err := adjust(tx, recipient.ID, t, amount)
			if err != nil {
				return err
			}

			err = tx.Create(&Transaction{
				RecipientID:     recipient.ID,
				CategoryType:    t,
				TransactionType: TypeDistribution,
				Amount:          amount,
				BalanceAfter:    balance,
				Description:     "Allowance distribution",
				TransactionDate: distribution.DistributionDate,
				DistributionID:  &distribution.ID,
			}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Distribution{}, err
	}

	return distribution, nil
}

// ListDistributions returns the distribution history of a recipient, newest
// first.
func ListDistributions(db *gorm.DB, managerID string, recipientID uuid.UUID) ([]Distribution, error) {
	if _, err := recipientOf(db, managerID, recipientID); err != nil {
		return nil, err
	}

	var distributions []Distribution
	err := db.
		Where(&Distribution{RecipientID: recipientID}).
		Order("distribution_date DESC, created_at DESC").
		Find(&distributions).Error
	if err != nil {
		return nil, err
	}

	return distributions, nil
}

// UndistributedAllowance is the allowance owed to a recipient since the
// profile was created that has not been distributed yet.
type UndistributedAllowance struct {
	WeeksSinceCreated   int64           `json:"weeksSinceCreated" example:"3"`
	AllowanceAmount     decimal.Decimal `json:"allowanceAmount" example:"10"`
	TotalAllowanceOwed  decimal.Decimal `json:"totalAllowanceOwed" example:"30"`
	TotalDistributed    decimal.Decimal `json:"totalDistributed" example:"25"`
	UndistributedAmount decimal.Decimal `json:"undistributedAmount" example:"5"`
	WeeksPending        int64           `json:"weeksPending" example:"0"`
}

const week = 7 * 24 * time.Hour

// Undistributed calculates the undistributed allowance of a recipient as of
// now. Only full weeks since creation are owed.
func Undistributed(db *gorm.DB, managerID string, recipientID uuid.UUID, now time.Time) (UndistributedAllowance, error) {
	recipient, err := recipientOf(db, managerID, recipientID)
	if err != nil {
		return UndistributedAllowance{}, err
	}

	var distributions []Distribution
	err = db.
		Select("total_amount").
		Where(&Distribution{RecipientID: recipientID}).
		Find(&distributions).Error
	if err != nil {
		return UndistributedAllowance{}, err
	}

	distributed := decimal.Zero
	for _, d := range distributions {
		distributed = distributed.Add(d.TotalAmount)
	}

	weeks := int64(now.Sub(recipient.CreatedAt) / week)
	if weeks < 0 {
		weeks = 0
	}

	owed := recipient.AllowanceAmount.Mul(decimal.NewFromInt(weeks))
	undistributed := decimal.Max(decimal.Zero, owed.Sub(distributed))

	var pending int64
	if recipient.AllowanceAmount.IsPositive() {
		pending = undistributed.Div(recipient.AllowanceAmount).Floor().IntPart()
	}

	return UndistributedAllowance{
		WeeksSinceCreated:   weeks,
		AllowanceAmount:     recipient.AllowanceAmount,
		TotalAllowanceOwed:  owed,
		TotalDistributed:    distributed,
		UndistributedAmount: undistributed,
		WeeksPending:        pending,
	}, nil
}
