package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	Name      string          `json:"name" example:"Vacation fund" default:""`
	Amount    decimal.Decimal `json:"amount" example:"180.50" swaggertype:"primitive,string"` // Fixed target amount
	Recurring bool            `json:"recurring" example:"true" default:"false"`               // Does the budget restart at its interval? Declarative, no scheduling happens.
	StartDate time.Time       `json:"startDate" example:"2024-01-01T00:00:00Z"`               // First day the budget applies to
}

func (editable BudgetEditable) model() models.Budget {
	return models.Budget{
		Name:      editable.Name,
		Amount:    editable.Amount,
		Recurring: editable.Recurring,
		StartDate: editable.StartDate,
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/3b1ea324-d438-4419-882a-2fc91d71772f"`
}

type Budget struct {
	models.DefaultModel
	BudgetEditable
	OwnerID uuid.UUID   `json:"ownerId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Links   BudgetLinks `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			Name:      model.Name,
			Amount:    model.Amount,
			Recurring: model.Recurring,
			StartDate: model.StartDate,
		},
		OwnerID: model.OwnerID,
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
		},
	}
}

type BudgetResponse struct {
	Data  *Budget `json:"data"`  // Data for the budget
	Error *string `json:"error"` // The error, if any occurred
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`       // List of budgets
	Error      *string     `json:"error"`      // The error, if any occurred
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type BudgetQueryFilter struct {
	Name      string `form:"name" filterField:"false"`   // By name
	Recurring bool   `form:"recurring"`                  // Is the budget recurring?
	Offset    uint   `form:"offset" filterField:"false"` // The offset of the first budget returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model() models.Budget {
	return models.Budget{
		Recurring: f.Recurring,
	}
}
