package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nisequence/two-sense/internal/models"
)

// RegisterRequest holds everything needed to create a new account.
type RegisterRequest struct {
	Handle      string `json:"handle" binding:"required" example:"morre"`           // Unique handle for the account
	Email       string `json:"email" binding:"required" example:"morre@example.com"` // Unique email address
	DisplayName string `json:"displayName" example:"Morre"`                          // Name shown to household members, defaults to the handle
	Password    string `json:"password" binding:"required"`                          // At least 8 characters
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"morre@example.com"`
	Password string `json:"password" binding:"required"`
}

// UserEditable represents all user configurable parameters
type UserEditable struct {
	DisplayName string `json:"displayName" example:"Morre" default:""`
	Email       string `json:"email" example:"morre@example.com" default:""`
	Password    string `json:"password" default:""`
}

type UserLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/users/me"`                 // The user itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"`     // Transactions of this user
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`               // Fixed budgets of this user
	Household    string `json:"household" example:"https://example.com/api/v1/households/{id}"`     // The user's household, empty if unaffiliated
}

type User struct {
	models.DefaultModel
	Handle      string     `json:"handle" example:"morre"`
	Email       string     `json:"email" example:"morre@example.com"`
	DisplayName string     `json:"displayName" example:"Morre"`
	HouseholdID *uuid.UUID `json:"householdId"` // null while the user is unaffiliated
	Links       UserLinks  `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	user := User{
		DefaultModel: model.DefaultModel,
		Handle:       model.Handle,
		Email:        model.Email,
		DisplayName:  model.DisplayName,
		HouseholdID:  model.HouseholdID,
		Links: UserLinks{
			Self:         fmt.Sprintf("%s/v1/users/me", url),
			Transactions: fmt.Sprintf("%s/v1/transactions", url),
			Budgets:      fmt.Sprintf("%s/v1/budgets", url),
		},
	}

	if model.HouseholdID != nil {
		user.Links.Household = fmt.Sprintf("%s/v1/households/%s", url, model.HouseholdID)
	}

	return user
}

type UserResponse struct {
	Data  *User   `json:"data"`  // Data for the user
	Error *string `json:"error"` // The error, if any occurred
}

// Session is returned after a successful registration or login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"` // Bearer token for subsequent requests
}

type SessionResponse struct {
	Data  *Session `json:"data"`  // The session, containing the user and their token
	Error *string  `json:"error"` // The error, if any occurred
}
