package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a named fixed spending target.
//
// It is always personal and optionally recurring. Recurrence is declarative
// metadata for clients, no scheduling happens on the server.
type Budget struct {
	DefaultModel
	Name      string
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Recurring bool
	StartDate time.Time
	OwnerID   uuid.UUID
	Owner     User `json:"-"`
}

// BeforeSave trims whitespace from all strings
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	return nil
}

// CanEdit reports whether the actor may change this budget.
func (b Budget) CanEdit(actor User) bool {
	return actor.ID == b.OwnerID
}

// CanDelete reports whether the actor may delete this budget.
func (b Budget) CanDelete(actor User) bool {
	return actor.ID == b.OwnerID
}

// CategoryBudget is a running allocation bound to a transaction category.
//
// The scope is either personal (no household reference) or a household's
// shared pool. A household budget can be assigned to the member responsible
// for spending against it; ownership stays with the creator.
type CategoryBudget struct {
	DefaultModel
	Category    string
	Amount      decimal.Decimal  `gorm:"type:DECIMAL(20,8)"`
	Remaining   *decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // tracked for household budgets only
	OwnerID     uuid.UUID
	Owner       User       `json:"-"`
	HouseholdID *uuid.UUID // nil for personal budgets
	Household   *Household `json:"-"`
	AssignedTo  *uuid.UUID // household budgets only
}

// BeforeSave enforces that assignment only exists on household budgets
// and trims whitespace
func (b *CategoryBudget) BeforeSave(_ *gorm.DB) error {
	b.Category = strings.TrimSpace(b.Category)

	if b.HouseholdID == nil {
		b.AssignedTo = nil
	}

	return nil
}

// Shared reports whether the budget belongs to a household's shared pool.
func (b CategoryBudget) Shared() bool {
	return b.HouseholdID != nil
}

// CanEdit reports whether the actor may change this budget.
// The assigned member may edit without being the owner.
func (b CategoryBudget) CanEdit(actor User) bool {
	if actor.ID == b.OwnerID {
		return true
	}

	return b.AssignedTo != nil && actor.ID == *b.AssignedTo
}

// CanDelete reports whether the actor may delete this budget.
func (b CategoryBudget) CanDelete(actor User) bool {
	return actor.ID == b.OwnerID
}

// CheckAssign verifies that the actor may assign this budget to the user.
//
// Only the owner assigns, only household budgets are assignable, and the
// assignee has to be a current member of the budget's household.
func (b CategoryBudget) CheckAssign(tx *gorm.DB, actor User, assignee User) error {
	if actor.ID != b.OwnerID {
		return ErrNotAuthorized
	}

	if !b.Shared() {
		return ErrBudgetNotShared
	}

	member, err := (&Household{DefaultModel: DefaultModel{ID: *b.HouseholdID}}).IsMember(tx, assignee.ID)
	if err != nil {
		return err
	}

	if !member {
		return ErrAssigneeNotMember
	}

	return nil
}

// Spent returns the sum spent against this budget.
//
// All expense transactions in the budget's scope count if their category
// matches the budget's category. The category supports glob matching, so a
// budget for "groceries*" covers "groceries" and "groceries/market".
func (b CategoryBudget) Spent(db *gorm.DB) (decimal.Decimal, error) {
	q := db.Where("amount < 0")
	if b.HouseholdID != nil {
		q = q.Where(&Transaction{HouseholdID: b.HouseholdID})
	} else {
		q = q.Where("household_id IS NULL").Where(&Transaction{OwnerID: b.OwnerID})
	}

	var transactions []Transaction
	err := q.Find(&transactions).Error
	if err != nil {
		return decimal.Zero, err
	}

	spent := decimal.Zero
	for _, t := range transactions {
		if glob.Glob(b.Category, t.Category) {
			spent = spent.Sub(t.Amount)
		}
	}

	return spent, nil
}

// Balance returns the amount still available for this budget.
func (b CategoryBudget) Balance(db *gorm.DB) (decimal.Decimal, error) {
	spent, err := b.Spent(db)
	if err != nil {
		return decimal.Zero, err
	}

	return b.Amount.Sub(spent), nil
}
