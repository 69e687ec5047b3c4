package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypeDistribution TransactionType = "distribution"
	TypeWithdrawal   TransactionType = "withdrawal"
	TypeDividend     TransactionType = "dividend"
	TypeBonus        TransactionType = "bonus"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDistribution, TypeWithdrawal, TypeDividend, TypeBonus:
		return true
	}
	return false
}

// ParseTransactionType parses s into a TransactionType.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		return "", invalid("type", "%q is not a transaction type, valid types are distribution, withdrawal, dividend and bonus", s)
	}
	return t, nil
}

// Transaction is an immutable ledger entry for one category. Amount is
// signed, withdrawals are negative.
type Transaction struct {
	DefaultModel
	RecipientID     uuid.UUID       `json:"recipientId" gorm:"index;not null"`
	CategoryType    CategoryType    `json:"categoryType" gorm:"not null"`
	TransactionType TransactionType `json:"transactionType" gorm:"not null"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	BalanceAfter    decimal.Decimal `json:"balanceAfter" gorm:"type:DECIMAL(20,8)"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	DistributionID  *uuid.UUID      `json:"distributionId"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now()
	}
	t.TransactionDate = t.TransactionDate.In(time.UTC)

	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.TransactionDate = t.TransactionDate.In(time.UTC)
	return t.DefaultModel.AfterFind(tx)
}

// TransactionFilter narrows down a transaction listing. Zero values do not
// filter.
type TransactionFilter struct {
	CategoryType    CategoryType
	TransactionType TransactionType

	// Description is a glob pattern, "*" matches any sequence of characters
	Description string
	Limit       int
}

// ListTransactions returns the transactions of a recipient, newest first.
func ListTransactions(db *gorm.DB, managerID string, recipientID uuid.UUID, filter TransactionFilter) ([]Transaction, error) {
	if filter.CategoryType != "" && !filter.CategoryType.Valid() {
		return nil, invalid("category", "%q is not a category", filter.CategoryType)
	}

	if filter.TransactionType != "" && !filter.TransactionType.Valid() {
		return nil, invalid("type", "%q is not a transaction type", filter.TransactionType)
	}

	if filter.Limit < 0 {
		return nil, invalid("limit", "the limit must not be negative")
	}

	if _, err := recipientOf(db, managerID, recipientID); err != nil {
		return nil, err
	}

	q := db.
		Where(&Transaction{RecipientID: recipientID, CategoryType: filter.CategoryType, TransactionType: filter.TransactionType}).
		Order("transaction_date DESC, created_at DESC")

	// Glob filtering happens in memory, so the limit is applied afterwards
	if filter.Description == "" && filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var transactions []Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	if filter.Description == "" {
		return transactions, nil
	}

	matching := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !glob.Glob(strings.ToLower(filter.Description), strings.ToLower(t.Description)) {
			continue
		}

		matching = append(matching, t)
		if filter.Limit > 0 && len(matching) == filter.Limit {
			break
		}
	}

	return matching, nil
}
