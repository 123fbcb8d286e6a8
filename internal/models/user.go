package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the identity record for a single person.
//
// A user optionally belongs to one household. The reference is kept on the
// user so that a lookup of the actor immediately tells us which shared pool
// their household-scoped resources live in.
type User struct {
	DefaultModel
	Handle       string     `gorm:"uniqueIndex"`
	Email        string     `gorm:"uniqueIndex"`
	DisplayName  string
	PasswordHash string     `json:"-"`
	HouseholdID  *uuid.UUID // nil while the user is unaffiliated
	Household    *Household `json:"-"`
}

// BeforeSave trims whitespace from all strings
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Handle = strings.TrimSpace(u.Handle)
	u.Email = strings.TrimSpace(u.Email)
	u.DisplayName = strings.TrimSpace(u.DisplayName)

	return nil
}

// InHousehold reports whether the user belongs to the given household.
func (u User) InHousehold(id uuid.UUID) bool {
	return u.HouseholdID != nil && *u.HouseholdID == id
}
