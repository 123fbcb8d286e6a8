package models

import (
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
)

// Household is a shared pool of costs between its members.
//
// Membership is kept as one ordered sequence of member records. Identity,
// display name and share always travel together, so the three can never go
// out of sync on a membership change.
type Household struct {
	DefaultModel
	Name     string
	Currency string    // ISO 4217 code, defaults to USD
	AdminID  uuid.UUID // The member managing this household. Absorbs rounding slack.
	Members  []HouseholdMember
}

// HouseholdMember is one participant of a household.
//
// The display name is mirrored from the user record so that household views
// never need to join against users.
type HouseholdMember struct {
	DefaultModel
	HouseholdID  uuid.UUID
	UserID       uuid.UUID `gorm:"uniqueIndex"` // a user belongs to at most one household
	DisplayName  string
	SharePercent int
}

// ValidCurrency reports whether code is a known ISO 4217 currency code.
func ValidCurrency(code string) bool {
	_, err := currency.ParseISO(code)
	return err == nil
}

// BeforeSave validates the currency and trims whitespace
func (h *Household) BeforeSave(_ *gorm.DB) error {
	h.Name = strings.TrimSpace(h.Name)

	if h.Currency == "" {
		h.Currency = "USD"
	}

	if !ValidCurrency(h.Currency) {
		return ErrCurrencyInvalid
	}

	return nil
}

// SharePercents splits 100% of shared costs between count members.
//
// Every member pays the cost share rounded half up to a whole percent. When
// that does not add up to exactly 100, the first slot (the admin) absorbs
// the difference. The result always sums to 100 for count >= 1.
func SharePercents(count int) []int {
	if count < 1 {
		return []int{}
	}

	base := int(math.Round(100 / float64(count)))
	disparity := 100 - base*count

	shares := make([]int, count)
	shares[0] = base + disparity
	for i := 1; i < count; i++ {
		shares[i] = base
	}

	return shares
}

// members returns the member records in join order.
func (h *Household) members(tx *gorm.DB) ([]HouseholdMember, error) {
	var members []HouseholdMember
	err := tx.Where(&HouseholdMember{HouseholdID: h.ID}).Order("created_at ASC").Find(&members).Error
	return members, err
}

// rebalance recomputes the share percentages for all members.
func (h *Household) rebalance(tx *gorm.DB) error {
	members, err := h.members(tx)
	if err != nil {
		return err
	}

	shares := SharePercents(len(members))

	// The admin takes the first share, everyone else moves up one slot
	i := 1
	for _, member := range members {
		share := shares[0]
		if member.UserID != h.AdminID {
			share = shares[i]
			i++
		}

		err := tx.Model(&HouseholdMember{}).Where("id = ?", member.ID).Update("share_percent", share).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// AddMember adds a user to the household and rebalances all shares.
func (h *Household) AddMember(tx *gorm.DB, user User) error {
	member := HouseholdMember{
		HouseholdID: h.ID,
		UserID:      user.ID,
		DisplayName: user.DisplayName,
	}

	err := tx.Create(&member).Error
	if err != nil {
		return err
	}

	return h.rebalance(tx)
}

// RemoveMember removes a user from the household and rebalances all shares.
//
// When the last member leaves, the household is dissolved and dissolved is
// returned as true. When the admin leaves a household that still has other
// members, the longest-standing remaining member is promoted to admin.
func (h *Household) RemoveMember(tx *gorm.DB, userID uuid.UUID) (dissolved bool, err error) {
	var member HouseholdMember
	err = tx.Where(&HouseholdMember{HouseholdID: h.ID, UserID: userID}).First(&member).Error
	if err != nil {
		return false, err
	}

	err = tx.Unscoped().Delete(&member).Error
	if err != nil {
		return false, err
	}

	remaining, err := h.members(tx)
	if err != nil {
		return false, err
	}

	if len(remaining) == 0 {
		return true, h.dissolve(tx)
	}

	if h.AdminID == userID {
		h.AdminID = remaining[0].UserID
		err = tx.Model(h).Update("admin_id", h.AdminID).Error
		if err != nil {
			return false, err
		}
	}

	return false, h.rebalance(tx)
}

// dissolve deletes the household once its last member has left.
//
// Every reference to the household has to be cleared first, the schema
// enforces them. Shared budgets and transactions revert to personal records
// of their owners.
func (h *Household) dissolve(tx *gorm.DB) error {
	err := tx.Model(&User{}).Where("household_id = ?", h.ID).Update("household_id", nil).Error
	if err != nil {
		return err
	}

	err = tx.Model(&Transaction{}).Where("household_id = ?", h.ID).Update("household_id", nil).Error
	if err != nil {
		return err
	}

	err = tx.Model(&CategoryBudget{}).Where("household_id = ?", h.ID).
		Updates(map[string]any{"household_id": nil, "assigned_to": nil}).Error
	if err != nil {
		return err
	}

	return tx.Unscoped().Delete(h).Error
}

// RenameMember updates the mirrored display name of a member.
// Share percentages are not touched.
func (h *Household) RenameMember(tx *gorm.DB, userID uuid.UUID, name string) error {
	var member HouseholdMember
	err := tx.Where(&HouseholdMember{HouseholdID: h.ID, UserID: userID}).First(&member).Error
	if err != nil {
		return err
	}

	return tx.Model(&member).Update("display_name", name).Error
}

// IsMember reports whether the user currently belongs to the household.
func (h *Household) IsMember(tx *gorm.DB, userID uuid.UUID) (bool, error) {
	var count int64
	err := tx.Model(&HouseholdMember{}).Where(&HouseholdMember{HouseholdID: h.ID, UserID: userID}).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
