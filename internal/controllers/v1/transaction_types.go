package v1

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/shopspring/decimal"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Date      time.Time       `json:"date" example:"2024-03-17T00:00:00Z"`                        // Date of the transaction, defaults to the current time
	Merchant  string          `json:"merchant" example:"Beppo's" default:""`                      // Where the money went to or came from
	Kind      string          `json:"kind" example:"expense"`                                     // "expense" or "income"
	Magnitude decimal.Decimal `json:"magnitude" example:"23.17" swaggertype:"primitive,string"` // Unsigned amount, the sign is derived from the kind
	Account   string          `json:"account" example:"DE89 3704 0044 0532 0130 00" default:""`   // Account label. Replaced with the display name for household transactions.
	Category  string          `json:"category" example:"groceries" default:""`                    // Free-form category
	BudgetID  *uuid.UUID      `json:"budgetId"`                                                   // Optional link to a category budget
}

func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:     editable.Date,
		Merchant: editable.Merchant,
		Account:  editable.Account,
		Category: editable.Category,
		BudgetID: editable.BudgetID,
	}
}

// TransactionCreate is the request body for creating a transaction.
type TransactionCreate struct {
	TransactionEditable
	Scope string `json:"scope" example:"personal" default:"personal"` // "personal" or "household"
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/3b1ea324-d438-4419-882a-2fc91d71772f"`
}

type Transaction struct {
	models.DefaultModel
	Date        time.Time        `json:"date" example:"2024-03-17T00:00:00Z"`
	Merchant    string           `json:"merchant" example:"Beppo's"`
	Kind        string           `json:"kind" example:"expense"`                                  // Derived from the sign of the amount
	Amount      decimal.Decimal  `json:"amount" example:"-23.17" swaggertype:"primitive,string"` // Signed amount, negative for expenses
	Account     string           `json:"account" example:"DE89 3704 0044 0532 0130 00"`           // The display name of the owner for household transactions
	Category    string           `json:"category" example:"groceries"`
	BudgetID    *uuid.UUID       `json:"budgetId"`    // Optional link to a category budget
	OwnerID     uuid.UUID        `json:"ownerId" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	HouseholdID *uuid.UUID       `json:"householdId"` // null for personal transactions
	Links       TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	kind := models.KindIncome
	if model.Amount.IsNegative() {
		kind = models.KindExpense
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		Date:         model.Date,
		Merchant:     model.Merchant,
		Kind:         kind,
		Amount:       model.Amount,
		Account:      model.Account,
		Category:     model.Category,
		BudgetID:     model.BudgetID,
		OwnerID:      model.OwnerID,
		HouseholdID:  model.HouseholdID,
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`  // Data for the transaction
	Error *string      `json:"error"` // The error, if any occurred
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`       // List of transactions
	Error      *string       `json:"error"`      // The error, if any occurred
	Pagination *Pagination   `json:"pagination"` // Pagination information
}

type TransactionQueryFilter struct {
	Category  string `form:"category" filterField:"false"`  // By category, glob patterns supported
	Merchant  string `form:"merchant" filterField:"false"`  // By merchant
	Account   string `form:"account" filterField:"false"`   // By account label
	Kind      string `form:"kind" filterField:"false"`      // Only expenses or only income
	Household bool   `form:"household" filterField:"false"` // The household's shared ledger instead of own transactions
	Offset    uint   `form:"offset" filterField:"false"`    // The offset of the first transaction returned. Defaults to 0.
	Limit     int    `form:"limit" filterField:"false"`     // Maximum number of transactions to return. Defaults to 50.
}
