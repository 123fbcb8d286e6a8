package v1_test

import (
	"net/http"
	"testing"
	"time"

	v1 "github.com/nisequence/two-sense/internal/controllers/v1"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/nisequence/two-sense/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionCreateExpense() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{
			Date:      time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
			Merchant:  "Beppo's",
			Kind:      models.KindExpense,
			Magnitude: decimal.NewFromFloat(23.17),
			Account:   "DE89 3704 0044 0532 0130 00",
			Category:  "groceries",
		},
	})

	suite.Assert().Equal(models.KindExpense, transaction.Kind)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromFloat(-23.17)), "amount is %s", transaction.Amount)
	suite.Assert().Equal("Beppo's", transaction.Merchant)
	suite.Assert().Equal("DE89 3704 0044 0532 0130 00", transaction.Account)
	suite.Assert().Equal(session.User.ID, transaction.OwnerID)
	suite.Assert().Nil(transaction.HouseholdID)
}

func (suite *TestSuiteStandard) TestTransactionCreateIncome() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{
			Date:      time.Now(),
			Kind:      models.KindIncome,
			Magnitude: decimal.NewFromInt(2500),
			Category:  "salary",
		},
	})

	suite.Assert().Equal(models.KindIncome, transaction.Kind)
	suite.Assert().True(transaction.Amount.Equal(decimal.NewFromInt(2500)))
}

func (suite *TestSuiteStandard) TestTransactionCreateInvalid() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	tests := []struct {
		name   string
		create v1.TransactionCreate
	}{
		{"negative magnitude", v1.TransactionCreate{TransactionEditable: v1.TransactionEditable{Kind: models.KindExpense, Magnitude: decimal.NewFromInt(-5)}}},
		{"unknown kind", v1.TransactionCreate{TransactionEditable: v1.TransactionEditable{Kind: "windfall", Magnitude: decimal.NewFromInt(5)}}},
		{"unknown scope", v1.TransactionCreate{TransactionEditable: v1.TransactionEditable{Kind: models.KindExpense, Magnitude: decimal.NewFromInt(5)}, Scope: "galactic"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", tt.create, test.BearerHeader(session.Token))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestTransactionCreateHousehold verifies that the account label of a
// shared transaction is replaced with the owner's display name before it
// is stored.
func (suite *TestSuiteStandard) TestTransactionCreateHousehold() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{DisplayName: "Morre"})
	household := createTestHousehold(suite.T(), session, v1.HouseholdEditable{})

	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{
			Date:      time.Now(),
			Kind:      models.KindExpense,
			Magnitude: decimal.NewFromInt(40),
			Account:   "DE89 3704 0044 0532 0130 00",
		},
		Scope: v1.ScopeHousehold,
	})

	require.NotNil(suite.T(), transaction.HouseholdID)
	suite.Assert().Equal(household.ID, *transaction.HouseholdID)
	suite.Assert().Equal("Morre", transaction.Account)

	// The raw label is gone, reading it back yields the display name
	r := test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Morre", response.Data.Account)
}

func (suite *TestSuiteStandard) TestTransactionCreateHouseholdUnaffiliated() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Kind: models.KindExpense, Magnitude: decimal.NewFromInt(5)},
		Scope:               v1.ScopeHousehold,
	}, test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionGet() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5), Merchant: "Beppo's"},
	})

	r := test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Beppo's", response.Data.Merchant)
}

func (suite *TestSuiteStandard) TestTransactionGetHouseholdMember() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	household := createTestHousehold(suite.T(), session, v1.HouseholdEditable{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5)},
		Scope:               v1.ScopeHousehold,
	})

	housemate := registerTestUser(suite.T(), v1.RegisterRequest{})
	joinTestHousehold(suite.T(), housemate, household.ID)

	outsider := registerTestUser(suite.T(), v1.RegisterRequest{})

	r := test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(housemate.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(outsider.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestTransactionGetPersonalOtherUser() {
	owner := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), owner, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5)},
	})

	other := registerTestUser(suite.T(), v1.RegisterRequest{})

	r := test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(other.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusForbidden)
}

func (suite *TestSuiteStandard) TestTransactionUpdate() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(30), Merchant: "Beppo's"},
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, `{"merchant": "Beppo's Pizza"}`, test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Beppo's Pizza", response.Data.Merchant)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(-30)), "amount must be untouched by a merchant-only update")
}

// TestTransactionUpdateKind verifies that amounts are recomputed when kind
// or magnitude change.
func (suite *TestSuiteStandard) TestTransactionUpdateKind() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Kind: models.KindExpense, Magnitude: decimal.NewFromInt(30)},
	})

	// Flipping the kind keeps the magnitude
	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, `{"kind": "income"}`, test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.KindIncome, response.Data.Kind)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromInt(30)), "amount is %s", response.Data.Amount)

	// Changing the magnitude keeps the kind
	r = test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, `{"magnitude": "12.50"}`, test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(models.KindIncome, response.Data.Kind)
	suite.Assert().True(response.Data.Amount.Equal(decimal.NewFromFloat(12.50)), "amount is %s", response.Data.Amount)
}

func (suite *TestSuiteStandard) TestTransactionUpdateInvalid() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(30)},
	})

	tests := []struct {
		name string
		body string
	}{
		{"negative magnitude", `{"magnitude": "-5"}`},
		{"unknown kind", `{"kind": "windfall"}`},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPatch, transaction.Links.Self, tt.body, test.BearerHeader(session.Token))
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

// TestTransactionUpdateRedactionSticks verifies that the account label of
// a shared transaction cannot be changed back to something identifying.
func (suite *TestSuiteStandard) TestTransactionUpdateRedactionSticks() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{DisplayName: "Morre"})
	createTestHousehold(suite.T(), session, v1.HouseholdEditable{})

	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5), Account: "DE89 3704 0044 0532 0130 00"},
		Scope:               v1.ScopeHousehold,
	})

	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, `{"account": "Secret Account"}`, test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Morre", response.Data.Account)
}

// Non-owners get a 404 on modification, a 403 would leak that the
// transaction exists.
func (suite *TestSuiteStandard) TestTransactionUpdateNonOwner() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	household := createTestHousehold(suite.T(), session, v1.HouseholdEditable{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5), Merchant: "Beppo's"},
		Scope:               v1.ScopeHousehold,
	})

	housemate := registerTestUser(suite.T(), v1.RegisterRequest{})
	joinTestHousehold(suite.T(), housemate, household.ID)

	r := test.Request(suite.T(), http.MethodPatch, transaction.Links.Self, `{"merchant": "Changed"}`, test.BearerHeader(housemate.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(session.Token))
	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Beppo's", response.Data.Merchant)
}

func (suite *TestSuiteStandard) TestTransactionDelete() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5)},
	})

	r := test.Request(suite.T(), http.MethodDelete, transaction.Links.Self, "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDeleteNonOwner() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	household := createTestHousehold(suite.T(), session, v1.HouseholdEditable{})
	transaction := createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Magnitude: decimal.NewFromInt(5)},
		Scope:               v1.ScopeHousehold,
	})

	housemate := registerTestUser(suite.T(), v1.RegisterRequest{})
	joinTestHousehold(suite.T(), housemate, household.ID)

	r := test.Request(suite.T(), http.MethodDelete, transaction.Links.Self, "", test.BearerHeader(housemate.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	// Still there for the owner
	r = test.Request(suite.T(), http.MethodGet, transaction.Links.Self, "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
}

// TestTransactionList verifies scoping, filters and pagination of the
// transaction list.
func (suite *TestSuiteStandard) TestTransactionList() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	household := createTestHousehold(suite.T(), session, v1.HouseholdEditable{})

	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Kind: models.KindExpense, Magnitude: decimal.NewFromInt(30), Merchant: "Beppo's", Category: "groceries"},
	})
	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Kind: models.KindExpense, Magnitude: decimal.NewFromInt(12), Merchant: "Transit Authority", Category: "transport/transit"},
	})
	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC), Kind: models.KindIncome, Magnitude: decimal.NewFromInt(2500), Merchant: "Employer", Category: "salary"},
	})
	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Kind: models.KindExpense, Magnitude: decimal.NewFromInt(80), Merchant: "Power Co", Category: "utilities"},
		Scope:               v1.ScopeHousehold,
	})

	housemate := registerTestUser(suite.T(), v1.RegisterRequest{})
	joinTestHousehold(suite.T(), housemate, household.ID)

	tests := []struct {
		name  string
		token string
		query string
		count int
	}{
		{"own transactions", session.Token, "", 3},
		{"household ledger", session.Token, "household=true", 1},
		{"household ledger as housemate", housemate.Token, "household=true", 1},
		{"housemate's own", housemate.Token, "", 0},
		{"expenses", session.Token, "kind=expense", 2},
		{"income", session.Token, "kind=income", 1},
		{"by merchant", session.Token, "merchant=Beppo", 1},
		{"by category glob", session.Token, "category=transport*", 1},
		{"paginated", session.Token, "offset=1&limit=1", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/transactions?"+tt.query, "", test.BearerHeader(tt.token))
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionListOrder() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})
	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Magnitude: decimal.NewFromInt(1), Merchant: "older"},
	})
	createTestTransaction(suite.T(), session, v1.TransactionCreate{
		TransactionEditable: v1.TransactionEditable{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Magnitude: decimal.NewFromInt(1), Merchant: "newer"},
	})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	suite.Assert().Equal("newer", response.Data[0].Merchant, "newest transaction comes first")
}

func (suite *TestSuiteStandard) TestTransactionListInvalidKind() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?kind=windfall", "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestTransactionListHouseholdUnaffiliated() {
	session := registerTestUser(suite.T(), v1.RegisterRequest{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions?household=true", "", test.BearerHeader(session.Token))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
