package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryType is one of the four fixed allowance categories.
type CategoryType string

const (
	Give   CategoryType = "give"
	Spend  CategoryType = "spend"
	Save   CategoryType = "save"
	Invest CategoryType = "invest"
)

// CategoryTypes lists every category, in display order.
var CategoryTypes = [...]CategoryType{Give, Spend, Save, Invest}

// Valid reports whether t is one of the four categories.
func (t CategoryType) Valid() bool {
	switch t {
	case Give, Spend, Save, Invest:
		return true
	}
	return false
}

// ParseCategoryType parses s into a CategoryType.
func ParseCategoryType(s string) (CategoryType, error) {
	t := CategoryType(s)
	if !t.Valid() {
		return "", invalid("category", "%q is not a category, valid categories are give, spend, save and invest", s)
	}
	return t, nil
}

// AllowanceCategory holds the running balance of one category for one
// recipient.
type AllowanceCategory struct {
	DefaultModel
	RecipientID  uuid.UUID       `json:"recipientId" gorm:"uniqueIndex:idx_category_recipient_type;not null"`
	CategoryType CategoryType    `json:"categoryType" gorm:"uniqueIndex:idx_category_recipient_type;not null"`
	Balance      decimal.Decimal `json:"balance" gorm:"type:DECIMAL(20,8)"`
}

// Amounts carries one value per category.
type Amounts struct {
	Give   decimal.Decimal `json:"give" example:"2.5"`
	Spend  decimal.Decimal `json:"spend" example:"2.5"`
	Save   decimal.Decimal `json:"save" example:"2.5"`
	Invest decimal.Decimal `json:"invest" example:"2.5"`
}

// Get returns the amount for category t.
func (a Amounts) Get(t CategoryType) decimal.Decimal {
	switch t {
	case Give:
		return a.Give
	case Spend:
		return a.Spend
	case Save:
		return a.Save
	case Invest:
		return a.Invest
	}
	panic(fmt.Sprintf("unknown category type %q", t))
}

// Set sets the amount for category t.
func (a *Amounts) Set(t CategoryType, v decimal.Decimal) {
	switch t {
	case Give:
		a.Give = v
	case Spend:
		a.Spend = v
	case Save:
		a.Save = v
	case Invest:
		a.Invest = v
	default:
		panic(fmt.Sprintf("unknown category type %q", t))
	}
}

// Total is the sum over all categories.
func (a Amounts) Total() decimal.Decimal {
	return a.Give.Add(a.Spend).Add(a.Save).Add(a.Invest)
}

// ProjectedDividend is the dividend the invest balance earns at rate.
func (a Amounts) ProjectedDividend(rate decimal.Decimal) decimal.Decimal {
	return a.Invest.Mul(rate).Round(2)
}

// EqualSplit divides total into four equal parts at cent precision. Cents
// that cannot be split evenly go to Save so that the parts always add up to
// total.
func EqualSplit(total decimal.Decimal) Amounts {
	quarter := total.Div(decimal.NewFromInt(int64(len(CategoryTypes)))).RoundDown(2)

	return Amounts{
		Give:   quarter,
		Spend:  quarter,
		Save:   total.Sub(quarter.Mul(decimal.NewFromInt(3))),
		Invest: quarter,
	}
}

// balances loads the four category balances of a recipient.
func balances(db *gorm.DB, recipientID uuid.UUID) (Amounts, error) {
	var categories []AllowanceCategory
	err := db.Where(&AllowanceCategory{RecipientID: recipientID}).Find(&categories).Error
	if err != nil {
		return Amounts{}, err
	}

	return amountsOf(categories)
}

func amountsOf(categories []AllowanceCategory) (Amounts, error) {
	if len(categories) != len(CategoryTypes) {
		return Amounts{}, fmt.Errorf("%w: expected %d categories, found %d", ErrStorage, len(CategoryTypes), len(categories))
	}

	var a Amounts
	for _, c := range categories {
		if !c.CategoryType.Valid() {
			return Amounts{}, fmt.Errorf("%w: unknown category type %q", ErrStorage, c.CategoryType)
		}
		a.Set(c.CategoryType, c.Balance)
	}

	return a, nil
}

// adjust changes the balance of one category by delta and returns the new
// balance. It must run inside Atomic.
func adjust(tx *gorm.DB, recipientID uuid.UUID, t CategoryType, delta decimal.Decimal) (decimal.Decimal, error) {
	var category AllowanceCategory
	err := forUpdate(tx).
		Where(&AllowanceCategory{RecipientID: recipientID, CategoryType: t}).
		First(&category).Error
	if err != nil {
		return decimal.Zero, err
	}

	balance := category.Balance.Add(delta)

	result := tx.Model(&AllowanceCategory{}).
		Where("id = ?", category.ID).
		Update("balance", balance)
	if err := single(result, fmt.Sprintf("%s balance update", t)); err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}
