package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction kinds. Anything that is not an expense counts as income.
const (
	KindExpense = "expense"
	KindIncome  = "income"
)

// Transaction is a single ledger entry.
//
// The amount is stored signed: positive for income, negative for expenses.
// For household-scoped transactions the account label holds the owner's
// display name instead of the real account identifier, so banking details
// never cross household boundaries.
type Transaction struct {
	DefaultModel
	Date        time.Time
	Merchant    string
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Account     string
	Category    string
	BudgetID    *uuid.UUID // optional link to a category budget
	OwnerID     uuid.UUID
	Owner       User       `json:"-"`
	HouseholdID *uuid.UUID // nil for personal transactions
	Household   *Household `json:"-"`
}

// SignedAmount combines a transaction kind and an unsigned magnitude into
// the signed amount that is stored: expenses are negated, everything else
// counts as income. Negative magnitudes are rejected before derivation.
func SignedAmount(kind string, magnitude decimal.Decimal) (decimal.Decimal, error) {
	if magnitude.IsNegative() {
		return decimal.Zero, ErrMagnitudeInvalid
	}

	if kind == KindExpense {
		return magnitude.Neg(), nil
	}

	return magnitude, nil
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// BeforeSave sets the timezone for the Date to UTC and trims whitespace
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	t.Merchant = strings.TrimSpace(t.Merchant)
	t.Account = strings.TrimSpace(t.Account)
	t.Category = strings.TrimSpace(t.Category)

	return nil
}

// CanRead reports whether the actor may see this transaction. Household
// members see all transactions scoped to their shared pool.
func (t Transaction) CanRead(actor User) bool {
	if actor.ID == t.OwnerID {
		return true
	}

	return t.HouseholdID != nil && actor.InHousehold(*t.HouseholdID)
}

// UpdateOwned applies changes to the transaction if and only if the actor
// owns it. Filtering on both id and owner in a single statement closes the
// race window between an ownership check and the write.
func (t *Transaction) UpdateOwned(db *gorm.DB, actor User, fields []any, changes Transaction) error {
	res := db.Model(&Transaction{}).
		Where("id = ? AND owner_id = ?", t.ID, actor.ID).
		Select("", fields...).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return db.First(t, "id = ?", t.ID).Error
}

// DeleteOwned deletes the transaction if and only if the actor owns it.
// Anyone else sees the same result as for a transaction that does not
// exist.
func (t Transaction) DeleteOwned(db *gorm.DB, actor User) error {
	res := db.Where("id = ? AND owner_id = ?", t.ID, actor.ID).Delete(&Transaction{})
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}

	return nil
}
