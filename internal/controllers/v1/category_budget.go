package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/httputil"
	"github.com/nisequence/two-sense/internal/models"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterCategoryBudgetRoutes registers the routes for category budgets
// with the RouterGroup that is passed.
func RegisterCategoryBudgetRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.Use(SessionMiddleware(tokens))

	// Root group
	{
		r.OPTIONS("", OptionsCategoryBudgetList)
		r.GET("", GetCategoryBudgets)
		r.POST("", CreateCategoryBudget)
	}

	// Category budget with ID
	{
		r.OPTIONS("/:id", OptionsCategoryBudgetDetail)
		r.GET("/:id", GetCategoryBudget)
		r.PATCH("/:id", UpdateCategoryBudget)
		r.DELETE("/:id", DeleteCategoryBudget)
		r.PATCH("/:id/assign", AssignCategoryBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryBudgets
// @Success		204
// @Router			/v1/category-budgets [options]
func OptionsCategoryBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			CategoryBudgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/category-budgets/{id} [options]
func OptionsCategoryBudgetDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.CategoryBudget{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create category budget
// @Description	Creates a new category budget. A personal budget tracks the creator's own spending, a household budget tracks the shared pool and can only be created by the household admin.
// @Tags			CategoryBudgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	CategoryBudgetResponse
// @Failure		400		{object}	CategoryBudgetResponse
// @Failure		401		{object}	httpError
// @Failure		403		{object}	CategoryBudgetResponse
// @Failure		500		{object}	CategoryBudgetResponse
// @Param			budget	body		CategoryBudgetCreate	true	"Category budget"
// @Router			/v1/category-budgets [post]
func CreateCategoryBudget(c *gin.Context) {
	user := actor(c)

	var request CategoryBudgetCreate
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	if request.Scope == "" {
		request.Scope = ScopePersonal
	}

	budget := request.model()
	budget.OwnerID = user.ID

	switch request.Scope {
	case ScopePersonal:
		// nothing to do
	case ScopeHousehold:
		if user.HouseholdID == nil {
			s := models.ErrNoHousehold.Error()
			c.JSON(status(models.ErrNoHousehold), CategoryBudgetResponse{Error: &s})
			return
		}

		var household models.Household
		err = models.DB.First(&household, "id = ?", user.HouseholdID).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CategoryBudgetResponse{Error: &s})
			return
		}

		if household.AdminID != user.ID {
			s := models.ErrNotAuthorized.Error()
			c.JSON(status(models.ErrNotAuthorized), CategoryBudgetResponse{Error: &s})
			return
		}

		budget.HouseholdID = user.HouseholdID
		remaining := budget.Amount
		budget.Remaining = &remaining
	default:
		s := models.ErrScopeInvalid.Error()
		c.JSON(status(models.ErrScopeInvalid), CategoryBudgetResponse{Error: &s})
		return
	}

	err = models.DB.Create(&budget).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	data, err := newCategoryBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, CategoryBudgetResponse{Data: &data})
}

// @Summary		Get category budgets
// @Description	Returns the authenticated user's personal category budgets, or the household's shared ones
// @Tags			CategoryBudgets
// @Produce		json
// @Success		200	{object}	CategoryBudgetListResponse
// @Failure		400	{object}	CategoryBudgetListResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	CategoryBudgetListResponse
// @Router			/v1/category-budgets [get]
// @Param			category	query	string	false	"Filter by category, glob patterns supported"
// @Param			household	query	bool	false	"List the household's shared budgets instead of personal ones"
// @Param			offset		query	uint	false	"The offset of the first budget returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of budgets to return. Defaults to 50."
func GetCategoryBudgets(c *gin.Context) {
	user := actor(c)

	var filter CategoryBudgetQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("category ASC")
	if filter.Household {
		if user.HouseholdID == nil {
			s := models.ErrNoHousehold.Error()
			c.JSON(status(models.ErrNoHousehold), CategoryBudgetListResponse{Error: &s})
			return
		}

		q = q.Where("household_id = ?", user.HouseholdID)
	} else {
		q = q.Where("household_id IS NULL").Where("owner_id = ?", user.ID)
	}

	var budgets []models.CategoryBudget
	err := q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetListResponse{Error: &s})
		return
	}

	// The category filter globs, which SQL cannot do for us
	if filter.Category != "" {
		matching := make([]models.CategoryBudget, 0, len(budgets))
		for _, budget := range budgets {
			if glob.Glob(filter.Category, budget.Category) {
				matching = append(matching, budget)
			}
		}
		budgets = matching
	}

	total := int64(len(budgets))

	// Pagination happens after the glob filter so that offsets stay stable
	if int(filter.Offset) < len(budgets) {
		budgets = budgets[filter.Offset:]
	} else {
		budgets = budgets[:0]
	}

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	if limit >= 0 && limit < len(budgets) {
		budgets = budgets[:limit]
	}

	data := make([]CategoryBudget, 0, len(budgets))
	for _, budget := range budgets {
		apiResource, err := newCategoryBudget(c, models.DB, budget)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), CategoryBudgetListResponse{Error: &s})
			return
		}
		data = append(data, apiResource)
	}

	c.JSON(http.StatusOK, CategoryBudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Offset: filter.Offset,
			Limit:  limit,
			Total:  total,
		},
	})
}

// @Summary		Get category budget
// @Description	Returns a specific category budget with its current spending
// @Tags			CategoryBudgets
// @Produce		json
// @Success		200	{object}	CategoryBudgetResponse
// @Failure		400	{object}	CategoryBudgetResponse
// @Failure		401	{object}	httpError
// @Failure		403	{object}	CategoryBudgetResponse
// @Failure		404	{object}	CategoryBudgetResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/category-budgets/{id} [get]
func GetCategoryBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var budget models.CategoryBudget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	canRead := budget.CanEdit(user)
	if budget.HouseholdID != nil && user.InHousehold(*budget.HouseholdID) {
		canRead = true
	}

	if !canRead {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), CategoryBudgetResponse{Error: &s})
		return
	}

	data, err := newCategoryBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryBudgetResponse{Data: &data})
}

// @Summary		Update category budget
// @Description	Updates category or amount. The owner and the assigned member may update.
// @Tags			CategoryBudgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	CategoryBudgetResponse
// @Failure		400		{object}	CategoryBudgetResponse
// @Failure		401		{object}	httpError
// @Failure		403		{object}	CategoryBudgetResponse
// @Failure		404		{object}	CategoryBudgetResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		CategoryBudgetEditable	true	"Category budget"
// @Router			/v1/category-budgets/{id} [patch]
func UpdateCategoryBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var budget models.CategoryBudget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	if !budget.CanEdit(user) {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), CategoryBudgetResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, CategoryBudgetEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var data CategoryBudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	err = models.DB.Model(&budget).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	r, err := newCategoryBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryBudgetResponse{Data: &r})
}

// @Summary		Assign category budget
// @Description	Assigns a shared category budget to a household member. Owner only, and the assignee has to be a current member of the budget's household.
// @Tags			CategoryBudgets
// @Accept			json
// @Produce		json
// @Success		200			{object}	CategoryBudgetResponse
// @Failure		400			{object}	CategoryBudgetResponse
// @Failure		401			{object}	httpError
// @Failure		403			{object}	CategoryBudgetResponse
// @Failure		404			{object}	CategoryBudgetResponse
// @Param			id			path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			assignment	body		AssignRequest	true	"Assignment"
// @Router			/v1/category-budgets/{id}/assign [patch]
func AssignCategoryBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var budget models.CategoryBudget
	err = models.DB.First(&budget, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var request AssignRequest
	err = httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	var assignee models.User
	err = models.DB.First(&assignee, "id = ?", request.UserID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	err = budget.CheckAssign(models.DB, user, assignee)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	err = models.DB.Model(&budget).Update("assigned_to", assignee.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	data, err := newCategoryBudget(c, models.DB, budget)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryBudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, CategoryBudgetResponse{Data: &data})
}

// @Summary		Delete category budget
// @Description	Deletes a category budget. Owner only.
// @Tags			CategoryBudgets
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/category-budgets/{id} [delete]
func DeleteCategoryBudget(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var budget models.CategoryBudget
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
