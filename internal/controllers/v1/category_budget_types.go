package v1

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Scopes a category budget can be created in.
const (
	ScopePersonal  = "personal"
	ScopeHousehold = "household"
)

// CategoryBudgetEditable represents all user configurable parameters
type CategoryBudgetEditable struct {
	Category string          `json:"category" example:"groceries*" default:""`              // Transaction category this budget covers, glob patterns supported
	Amount   decimal.Decimal `json:"amount" example:"240" swaggertype:"primitive,string"` // Allocated amount
}

func (editable CategoryBudgetEditable) model() models.CategoryBudget {
	return models.CategoryBudget{
		Category: editable.Category,
		Amount:   editable.Amount,
	}
}

// CategoryBudgetCreate is the request body for creating a category budget.
type CategoryBudgetCreate struct {
	CategoryBudgetEditable
	Scope string `json:"scope" example:"personal" default:"personal"` // "personal" or "household"
}

// AssignRequest names the household member taking responsibility for a
// shared category budget.
type AssignRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required" example:"65392deb-5e92-4268-b114-297faad6cdce"`
}

type CategoryBudgetLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/category-budgets/3b1ea324-d438-4419-882a-2fc91d71772f"`
	Assign       string `json:"assign" example:"https://example.com/api/v1/category-budgets/3b1ea324-d438-4419-882a-2fc91d71772f/assign"`
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=groceries%2A"`
}

type CategoryBudget struct {
	models.DefaultModel
	CategoryBudgetEditable
	OwnerID     uuid.UUID           `json:"ownerId" example:"65392deb-5e92-4268-b114-297faad6cdce"` // The creator of the budget
	HouseholdID *uuid.UUID          `json:"householdId"`                                            // null for personal budgets
	AssignedTo  *uuid.UUID          `json:"assignedTo"`                                             // The member responsible for the budget, household budgets only
	Remaining   *decimal.Decimal    `json:"remaining" swaggertype:"primitive,string"`               // Allocation snapshot taken at creation, household budgets only
	Spent       decimal.Decimal     `json:"spent" example:"130.75" swaggertype:"primitive,string"`   // Sum of matching expenses in the budget's scope
	Balance     decimal.Decimal     `json:"balance" example:"109.25" swaggertype:"primitive,string"` // Amount still available
	Links       CategoryBudgetLinks `json:"links"`
}

func newCategoryBudget(c *gin.Context, db *gorm.DB, model models.CategoryBudget) (CategoryBudget, error) {
	url := c.GetString(string(models.DBContextURL))

	spent, err := model.Spent(db)
	if err != nil {
		return CategoryBudget{}, err
	}

	return CategoryBudget{
		DefaultModel: model.DefaultModel,
		CategoryBudgetEditable: CategoryBudgetEditable{
			Category: model.Category,
			Amount:   model.Amount,
		},
		OwnerID:     model.OwnerID,
		HouseholdID: model.HouseholdID,
		AssignedTo:  model.AssignedTo,
		Remaining:   model.Remaining,
		Spent:       spent,
		Balance:     model.Amount.Sub(spent),
		Links: CategoryBudgetLinks{
			Self:         fmt.Sprintf("%s/v1/category-budgets/%s", url, model.ID),
			Assign:       fmt.Sprintf("%s/v1/category-budgets/%s/assign", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.Category),
		},
	}, nil
}

type CategoryBudgetResponse struct {
	Data  *CategoryBudget `json:"data"`  // Data for the category budget
	Error *string         `json:"error"` // The error, if any occurred
}

type CategoryBudgetListResponse struct {
	Data       []CategoryBudget `json:"data"`       // List of category budgets
	Error      *string          `json:"error"`      // The error, if any occurred
	Pagination *Pagination      `json:"pagination"` // Pagination information
}

type CategoryBudgetQueryFilter struct {
	Category  string `form:"category" filterField:"false"`  // By category, glob patterns supported
	Household bool   `form:"household" filterField:"false"` // Only the household's shared budgets instead of personal ones
	Offset    uint   `form:"offset" filterField:"false"`    // The offset of the first budget returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`     // Maximum number of budgets to return. Defaults to 50.
}
