package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/httputil"
	"github.com/nisequence/two-sense/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterBudgetRoutes registers the routes for fixed budgets with
// the RouterGroup that is passed.
func RegisterBudgetRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.Use(SessionMiddleware(tokens))

	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", GetBudgets)
		r.POST("", CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", OptionsBudgetDetail)
		r.GET("/:id", GetBudget)
		r.PATCH("/:id", UpdateBudget)
		r.DELETE("/:id", DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func OptionsBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Budget{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create budget
// @Description	Creates a new fixed budget owned by the authenticated user
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		500		{object}	BudgetResponse
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	user := actor(c)

	var editable BudgetEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	budget := editable.model()
	budget.OwnerID = user.ID

	err = models.DB.Create(&budget).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusCreated, BudgetResponse{Data: &data})
}

// @Summary		Get budgets
// @Description	Returns the authenticated user's fixed budgets
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetListResponse
// @Failure		400	{object}	BudgetListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	BudgetListResponse
// @Router			/v1/budgets [get]
// @Param			name		query	string	false	"Filter by name"
// @Param			recurring	query	bool	false	"Is the budget recurring?"
// @Param			offset		query	uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of budgets to return. Defaults to 50."
func GetBudgets(c *gin.Context) {
	user := actor(c)

	var filter BudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	// Get the fields that we are filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel := filter.model()

	q := models.DB.
		Where("owner_id = ?", user.ID).
		Order("name ASC").
		Where(&filterModel, queryFields...)

	q = stringFilters(q, setFields, filter.Name, "", "")

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 budgets and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var budgets []models.Budget
	err := q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	data := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		data = append(data, newBudget(c, budget))
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  count,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific fixed budget
// @Tags			Budgets
// @Produce		json
// @Success		200	{object}	BudgetResponse
// @Failure		400	{object}	BudgetResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	BudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	data := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Updates a fixed budget. Only values to be updated need to be specified. Owner only.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		401		{object}	httpError
// @Failure		403		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	if !budget.CanEdit(user) {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), BudgetResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	var data BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	err = models.DB.Model(&budget).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	r := newBudget(c, budget)
	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Delete budget
// @Description	Deletes a fixed budget. Owner only.
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var budget models.Budget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if !budget.CanDelete(user) {
		c.JSON(status(models.ErrNotAuthorized), httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	err = models.DB.Delete(&budget).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
