package models_test

import (
	"testing"

	"github.com/nisequence/two-sense/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) createTestCategoryBudget(budget models.CategoryBudget) models.CategoryBudget {
	err := models.DB.Create(&budget).Error
	if err != nil {
		suite.Assert().FailNow("Category budget could not be saved", "Error: %s, Budget: %#v", err, budget)
	}

	return budget
}

func (suite *TestSuiteStandard) TestBudgetCanEdit() {
	owner := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	budget := models.Budget{
		Name:    "Vacation fund",
		Amount:  decimal.NewFromInt(500),
		OwnerID: owner.ID,
	}
	suite.Require().NoError(models.DB.Create(&budget).Error)

	suite.Assert().True(budget.CanEdit(owner))
	suite.Assert().True(budget.CanDelete(owner))
	suite.Assert().False(budget.CanEdit(other))
	suite.Assert().False(budget.CanDelete(other))
}

func (suite *TestSuiteStandard) TestCategoryBudgetPersonalClearsAssignment() {
	owner := suite.createTestUser(models.User{})

	// A personal budget can never carry an assignment
	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		Category:   "groceries",
		Amount:     decimal.NewFromInt(200),
		OwnerID:    owner.ID,
		AssignedTo: &owner.ID,
	})

	suite.Assert().Nil(budget.AssignedTo)
	suite.Assert().False(budget.Shared())
}

func (suite *TestSuiteStandard) TestCategoryBudgetCanEdit() {
	owner := suite.createTestUser(models.User{})
	assignee := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	household := suite.createTestHousehold(owner, models.Household{Name: "Shared Flat"})
	suite.addTestMember(&household, assignee)

	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		Category:    "groceries",
		Amount:      decimal.NewFromInt(200),
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
		AssignedTo:  &assignee.ID,
	})

	suite.Assert().True(budget.CanEdit(owner))
	suite.Assert().True(budget.CanEdit(assignee), "the assigned member may edit without being the owner")
	suite.Assert().False(budget.CanEdit(other))

	// Deletion stays with the owner
	suite.Assert().True(budget.CanDelete(owner))
	suite.Assert().False(budget.CanDelete(assignee))
}

func (suite *TestSuiteStandard) TestCategoryBudgetCheckAssign() {
	owner := suite.createTestUser(models.User{})
	housemate := suite.createTestUser(models.User{})
	outsider := suite.createTestUser(models.User{})

	household := suite.createTestHousehold(owner, models.Household{Name: "Shared Flat"})
	suite.addTestMember(&household, housemate)

	shared := suite.createTestCategoryBudget(models.CategoryBudget{
		Category:    "groceries",
		Amount:      decimal.NewFromInt(200),
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
	})

	personal := suite.createTestCategoryBudget(models.CategoryBudget{
		Category: "games",
		Amount:   decimal.NewFromInt(50),
		OwnerID:  owner.ID,
	})

	tests := []struct {
		name     string
		budget   models.CategoryBudget
		actor    models.User
		assignee models.User
		err      error
	}{
		{"owner assigns to member", shared, owner, housemate, nil},
		{"only the owner assigns", shared, housemate, housemate, models.ErrNotAuthorized},
		{"personal budgets are not assignable", personal, owner, housemate, models.ErrBudgetNotShared},
		{"assignee has to be a member", shared, owner, outsider, models.ErrAssigneeNotMember},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := tt.budget.CheckAssign(models.DB, tt.actor, tt.assignee)

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryBudgetSpent() {
	owner := suite.createTestUser(models.User{})
	housemate := suite.createTestUser(models.User{})

	household := suite.createTestHousehold(owner, models.Household{Name: "Shared Flat"})
	suite.addTestMember(&household, housemate)

	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		Category:    "groceries*",
		Amount:      decimal.NewFromInt(200),
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
	})

	// Two matching expenses from different members
	suite.createTestTransaction(models.Transaction{
		Amount:      decimal.NewFromInt(-30),
		Category:    "groceries",
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
	})
	suite.createTestTransaction(models.Transaction{
		Amount:      decimal.RequireFromString("-12.50"),
		Category:    "groceries/market",
		OwnerID:     housemate.ID,
		HouseholdID: &household.ID,
	})

	// Not counted: income, other category, personal scope
	suite.createTestTransaction(models.Transaction{
		Amount:      decimal.NewFromInt(100),
		Category:    "groceries",
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
	})
	suite.createTestTransaction(models.Transaction{
		Amount:      decimal.NewFromInt(-40),
		Category:    "gross negligence",
		OwnerID:     owner.ID,
		HouseholdID: &household.ID,
	})
	suite.createTestTransaction(models.Transaction{
		Amount:   decimal.NewFromInt(-25),
		Category: "groceries",
		OwnerID:  owner.ID,
	})

	spent, err := budget.Spent(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(spent.Equal(decimal.RequireFromString("42.50")), "spent is %s", spent)

	balance, err := budget.Balance(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(balance.Equal(decimal.RequireFromString("157.50")), "balance is %s", balance)
}

func (suite *TestSuiteStandard) TestCategoryBudgetSpentPersonal() {
	owner := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})

	budget := suite.createTestCategoryBudget(models.CategoryBudget{
		Category: "games",
		Amount:   decimal.NewFromInt(50),
		OwnerID:  owner.ID,
	})

	suite.createTestTransaction(models.Transaction{
		Amount:   decimal.NewFromInt(-20),
		Category: "games",
		OwnerID:  owner.ID,
	})

	// Someone else's spending never counts against a personal budget
	suite.createTestTransaction(models.Transaction{
		Amount:   decimal.NewFromInt(-30),
		Category: "games",
		OwnerID:  other.ID,
	})

	spent, err := budget.Spent(models.DB)
	suite.Require().NoError(err)
	suite.Assert().True(spent.Equal(decimal.NewFromInt(20)), "spent is %s", spent)
}
