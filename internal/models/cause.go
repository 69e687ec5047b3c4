package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// MaxActiveCauses is the number of causes a recipient may have that are not
// completed yet.
const MaxActiveCauses = 3

// CharitableCause is a savings goal inside the Give category. Allocating to a
// cause earmarks Give money without moving it.
type CharitableCause struct {
	DefaultModel
	RecipientID   uuid.UUID       `json:"recipientId" gorm:"index;not null"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	GoalAmount    decimal.Decimal `json:"goalAmount" gorm:"type:DECIMAL(20,8)"`
	CurrentAmount decimal.Decimal `json:"currentAmount" gorm:"type:DECIMAL(20,8)"`
	DueDate       *time.Time      `json:"dueDate"`
	IsCompleted   bool            `json:"isCompleted"`
	CompletedAt   *time.Time      `json:"completedAt"`
}

func (c *CharitableCause) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)

	if c.DueDate != nil {
		d := day(*c.DueDate)
		c.DueDate = &d
	}

	return nil
}

func (c *CharitableCause) AfterFind(tx *gorm.DB) error {
	if c.DueDate != nil {
		d := c.DueDate.In(time.UTC)
		c.DueDate = &d
	}

	if c.CompletedAt != nil {
		t := c.CompletedAt.In(time.UTC)
		c.CompletedAt = &t
	}

	return c.DefaultModel.AfterFind(tx)
}

// CauseProgress describes how far a cause is from its goal.
type CauseProgress struct {
	ProgressPercentage decimal.Decimal `json:"progressPercentage" example:"40"` // Share of the goal allocated, capped at 100
	RemainingAmount    decimal.Decimal `json:"remainingAmount" example:"30"`    // Amount missing to reach the goal
	IsGoalReached      bool            `json:"isGoalReached" example:"false"`
	IsOverdue          bool            `json:"isOverdue" example:"false"`     // Due date has passed and the cause is not completed
	DaysUntilDue       *int            `json:"daysUntilDue" example:"12"`     // Calendar days until the due date, negative when overdue
}

var hundred = decimal.NewFromInt(100)

// Progress calculates the progress of the cause as of now.
func (c CharitableCause) Progress(now time.Time) CauseProgress {
	p := CauseProgress{
		ProgressPercentage: decimal.Zero,
		RemainingAmount:    decimal.Max(decimal.Zero, c.GoalAmount.Sub(c.CurrentAmount)),
		IsGoalReached:      c.CurrentAmount.GreaterThanOrEqual(c.GoalAmount),
	}

	if c.GoalAmount.IsPositive() {
		p.ProgressPercentage = decimal.Min(hundred, c.CurrentAmount.Div(c.GoalAmount).Mul(hundred)).Round(2)
	}

	if c.DueDate != nil {
		days := int(math.Round(day(*c.DueDate).Sub(day(now)).Hours() / 24))
		p.DaysUntilDue = &days
		p.IsOverdue = days < 0 && !c.IsCompleted
	}

	return p
}

// CauseCreate holds the editable fields of a cause.
type CauseCreate struct {
	Name        string
	Description string
	GoalAmount  decimal.Decimal
	DueDate     *time.Time
}

// Fields of CauseCreate that UpdateCause accepts.
var causeFields = []string{"Name", "Description", "GoalAmount", "DueDate"}

func validateCauseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "the cause name must not be empty")
	}
	return nil
}

func validateGoalAmount(goal decimal.Decimal) error {
	if !goal.IsPositive() {
		return invalid("goalAmount", "the goal amount must be greater than zero")
	}
	return nil
}

// causeOf loads a cause whose recipient is owned by managerID.
func causeOf(db *gorm.DB, managerID string, id uuid.UUID) (CharitableCause, error) {
	var cause CharitableCause
	err := db.
		Joins("JOIN recipients ON recipients.id = charitable_causes.recipient_id").
		Where("charitable_causes.id = ? AND recipients.manager_id = ?", id, managerID).
		First(&cause).Error
	if err != nil {
		return CharitableCause{}, err
	}

	return cause, nil
}

// lockCause locks the Give category of the cause's recipient, then the cause
// itself. All cause writes lock in this order.
func lockCause(tx *gorm.DB, managerID string, id uuid.UUID) (CharitableCause, error) {
	cause, err := causeOf(tx, managerID, id)
	if err != nil {
		return CharitableCause{}, err
	}

	if _, err := lockGive(tx, cause.RecipientID); err != nil {
		return CharitableCause{}, err
	}

	return causeOf(forUpdate(tx), managerID, id)
}

// GetCause returns one cause.
func GetCause(db *gorm.DB, managerID string, id uuid.UUID) (CharitableCause, error) {
	return causeOf(db, managerID, id)
}

// ListCauses returns all causes of a recipient, active and completed, in the
// order they were created.
func ListCauses(db *gorm.DB, managerID string, recipientID uuid.UUID) ([]CharitableCause, error) {
	if _, err := recipientOf(db, managerID, recipientID); err != nil {
		return nil, err
	}

	var causes []CharitableCause
	err := db.
		Where(&CharitableCause{RecipientID: recipientID}).
		Order("created_at ASC").
		Find(&causes).Error
	if err != nil {
		return nil, err
	}

	return causes, nil
}

// CreateCause creates a cause for a recipient. A recipient can have at most
// MaxActiveCauses causes that are not completed.
func CreateCause(db *gorm.DB, managerID string, recipientID uuid.UUID, create CauseCreate) (CharitableCause, error) {
	if err := validateCauseName(create.Name); err != nil {
		return CharitableCause{}, err
	}

	if err := validateGoalAmount(create.GoalAmount); err != nil {
		return CharitableCause{}, err
	}

	recipient, err := recipientOf(db, managerID, recipientID)
	if err != nil {
		return CharitableCause{}, err
	}

	cause := CharitableCause{
		RecipientID:   recipient.ID,
		Name:          create.Name,
		Description:   create.Description,
		GoalAmount:    create.GoalAmount,
		CurrentAmount: decimal.Zero,
		DueDate:       create.DueDate,
	}

	err = Atomic(db, func(tx *gorm.DB) error {
		if _, err := lockGive(tx, recipient.ID); err != nil {
			return err
		}

		var active int64
		err := tx.Model(&CharitableCause{}).
			Where("recipient_id = ? AND is_completed = ?", recipient.ID, false).
			Count(&active).Error
		if err != nil {
			return err
		}

		if active >= MaxActiveCauses {
			return ErrMaxCausesExceeded
		}

		return tx.Create(&cause).Error
	})
	if err != nil {
		return CharitableCause{}, err
	}

	return cause, nil
}

// UpdateCause sets the named fields of a cause to the values in update. The
// goal can not be lowered below the amount already allocated.
func UpdateCause(db *gorm.DB, managerID string, id uuid.UUID, update CauseCreate, fields ...string) (CharitableCause, error) {
	for _, f := range fields {
		if !slices.Contains(causeFields, f) {
			return CharitableCause{}, invalid(f, "%s can not be updated", f)
		}
	}

	if slices.Contains(fields, "Name") {
		if err := validateCauseName(update.Name); err != nil {
			return CharitableCause{}, err
		}
	}

	if slices.Contains(fields, "GoalAmount") {
		if err := validateGoalAmount(update.GoalAmount); err != nil {
			return CharitableCause{}, err
		}
	}

	if len(fields) == 0 {
		return causeOf(db, managerID, id)
	}

	var cause CharitableCause
	err := Atomic(db, func(tx *gorm.DB) error {
		var err error
		cause, err = lockCause(tx, managerID, id)
		if err != nil {
			return err
		}

		if slices.Contains(fields, "GoalAmount") && update.GoalAmount.LessThan(cause.CurrentAmount) {
			return ErrGoalBelowAllocated
		}

		values := CharitableCause{
			Name:        strings.TrimSpace(update.Name),
			Description: strings.TrimSpace(update.Description),
			GoalAmount:  update.GoalAmount,
		}
		if update.DueDate != nil {
			d := day(*update.DueDate)
			values.DueDate = &d
		}

		return tx.Model(&cause).Select(fields).Updates(values).Error
	})
	if err != nil {
		return CharitableCause{}, err
	}

	return causeOf(db, managerID, id)
}

// DeleteCause removes a cause. Money allocated to it becomes unallocated
// again, completed donations stay in the transaction history.
func DeleteCause(db *gorm.DB, managerID string, id uuid.UUID) error {
	cause, err := causeOf(db, managerID, id)
	if err != nil {
		return err
	}

	return single(db.Delete(&cause), "cause deletion")
}

// GiveBalance splits the Give balance into money earmarked for active causes
// and money that is still free.
type GiveBalance struct {
	TotalUnspent   decimal.Decimal `json:"totalUnspent" example:"40"`   // Give category balance
	TotalAllocated decimal.Decimal `json:"totalAllocated" example:"30"` // Allocated to causes that are not completed
	Unallocated    decimal.Decimal `json:"unallocated" example:"10"`    // TotalUnspent minus TotalAllocated
}

func giveBalance(db *gorm.DB, recipientID uuid.UUID) (GiveBalance, error) {
	var category AllowanceCategory
	err := db.
		Where(&AllowanceCategory{RecipientID: recipientID, CategoryType: Give}).
		First(&category).Error
	if err != nil {
		return GiveBalance{}, err
	}

	var causes []CharitableCause
	err = db.
		Select("current_amount").
		Where("recipient_id = ? AND is_completed = ?", recipientID, false).
		Find(&causes).Error
	if err != nil {
		return GiveBalance{}, err
	}

	allocated := decimal.Zero
	for _, c := range causes {
		allocated = allocated.Add(c.CurrentAmount)
	}

	return GiveBalance{
		TotalUnspent:   category.Balance,
		TotalAllocated: allocated,
		Unallocated:    category.Balance.Sub(allocated),
	}, nil
}

// lockGive loads the Give category of a recipient and locks it until the
// transaction ends. Units of work that read or change allocations hold this
// lock, so they run one after another per recipient.
func lockGive(tx *gorm.DB, recipientID uuid.UUID) (AllowanceCategory, error) {
	var category AllowanceCategory
	err := forUpdate(tx).
		Where(&AllowanceCategory{RecipientID: recipientID, CategoryType: Give}).
		First(&category).Error
	if err != nil {
		return AllowanceCategory{}, err
	}

	return category, nil
}

// GetGiveBalance returns the Give balance of a recipient.
func GetGiveBalance(db *gorm.DB, managerID string, recipientID uuid.UUID) (GiveBalance, error) {
	if _, err := recipientOf(db, managerID, recipientID); err != nil {
		return GiveBalance{}, err
	}

	return giveBalance(db, recipientID)
}

// AllocateToCause earmarks amount of the unallocated Give money for a cause.
// No money moves and no transaction is recorded.
func AllocateToCause(db *gorm.DB, managerID string, id uuid.UUID, amount decimal.Decimal) (CharitableCause, error) {
	if !amount.IsPositive() {
		return CharitableCause{}, invalid("amount", "the allocation amount must be greater than zero")
	}

	var cause CharitableCause
	err := Atomic(db, func(tx *gorm.DB) error {
		var err error
		cause, err = lockCause(tx, managerID, id)
		if err != nil {
			return err
		}

		if cause.IsCompleted {
			return ErrAlreadyCompleted
		}

		current := cause.CurrentAmount.Add(amount)
		if current.GreaterThan(cause.GoalAmount) {
			return ErrGoalExceeded
		}

		balance, err := giveBalance(tx, cause.RecipientID)
		if err != nil {
			return err
		}

		if amount.GreaterThan(balance.Unallocated) {
			return ErrInsufficientUnallocatedFunds
		}

		result := tx.Model(&CharitableCause{}).
			Where("id = ?", cause.ID).
			Update("current_amount", current)
		if err := single(result, "cause allocation"); err != nil {
			return err
		}

		cause.CurrentAmount = current
		return nil
	})
	if err != nil {
		return CharitableCause{}, err
	}

	return cause, nil
}

// CompleteCause donates the money allocated to a cause. The Give balance is
// debited, the withdrawal is recorded and the cause is marked as completed in
// one unit of work.
func CompleteCause(db *gorm.DB, managerID string, id uuid.UUID) (CharitableCause, error) {
	var cause CharitableCause
	err := Atomic(db, func(tx *gorm.DB) error {
		var err error
		cause, err = lockCause(tx, managerID, id)
		if err != nil {
			return err
		}

		return donate(tx, &cause, time.Now())
	})
	if err != nil {
		return CharitableCause{}, err
	}

	return cause, nil
}

// donate debits the allocated amount of the cause from the Give category of
// its recipient, records the withdrawal and completes the cause.
func donate(tx *gorm.DB, cause *CharitableCause, now time.Time) error {
	if cause.IsCompleted {
		return ErrAlreadyCompleted
	}

	category, err := lockGive(tx, cause.RecipientID)
	if err != nil {
		return err
	}

	if category.Balance.LessThan(cause.CurrentAmount) {
		return ErrInsufficientCategoryBalance
	}

	balance, err := adjust(tx, cause.RecipientID, Give, cause.CurrentAmount.Neg())
	if err != nil {
		return err
	}

	err = tx.Create(&Transaction{
		RecipientID:     cause.RecipientID,
		CategoryType:    Give,
		TransactionType: TypeWithdrawal,
		Amount:          cause.CurrentAmount.Neg(),
		BalanceAfter:    balance,
		Description:     fmt.Sprintf("Donation to %s", cause.Name),
		TransactionDate: now,
	}).Error
	if err != nil {
		return err
	}

	completedAt := now.In(time.UTC)
	result := tx.Model(&CharitableCause{}).
		Where("id = ? AND is_completed = ?", cause.ID, false).
		Updates(map[string]any{
			"is_completed": true,
			"completed_at": completedAt,
		})
	if err := single(result, "cause completion"); err != nil {
		return err
	}

	cause.IsCompleted = true
	cause.CompletedAt = &completedAt
	return nil
}
