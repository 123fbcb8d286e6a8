package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/httputil"
	"github.com/nisequence/two-sense/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterHouseholdRoutes registers the routes for households with
// the RouterGroup that is passed.
func RegisterHouseholdRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	r.Use(SessionMiddleware(tokens))

	// Root group
	{
		r.OPTIONS("", OptionsHouseholdList)
		r.POST("", CreateHousehold)
	}

	// Household with ID
	{
		r.OPTIONS("/:id", OptionsHouseholdDetail)
		r.GET("/:id", GetHousehold)
		r.PATCH("/:id", UpdateHousehold)
	}

	// Membership
	{
		r.POST("/:id/members", JoinHousehold)
		r.DELETE("/:id/members/:userId", RemoveHouseholdMember)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Households
// @Success		204
// @Router			/v1/households [options]
func OptionsHouseholdList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Households
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id} [options]
func OptionsHouseholdDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Household{}, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("allow", "OPTIONS, GET, PATCH")
	c.Status(http.StatusNoContent)
}

// @Summary		Create household
// @Description	Creates a new household. The creator becomes its admin and only member, carrying 100% of shared costs.
// @Tags			Households
// @Accept			json
// @Produce		json
// @Success		201			{object}	HouseholdResponse
// @Failure		400			{object}	HouseholdResponse
// @Failure		401			{object}	httpError
// @Failure		409			{object}	HouseholdResponse
// @Failure		500			{object}	HouseholdResponse
// @Param			household	body		HouseholdEditable	true	"Household"
// @Router			/v1/households [post]
func CreateHousehold(c *gin.Context) {
	user := actor(c)

	var editable HouseholdEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	if user.HouseholdID != nil {
		s := models.ErrAlreadyInHousehold.Error()
		c.JSON(status(models.ErrAlreadyInHousehold), HouseholdResponse{Error: &s})
		return
	}

	household := editable.model()
	household.AdminID = user.ID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&household).Error
		if err != nil {
			return err
		}

		err = household.AddMember(tx, user)
		if err != nil {
			return err
		}

		return tx.Model(&user).Update("household_id", household.ID).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	data, err := newHousehold(c, models.DB, household)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, HouseholdResponse{Data: &data})
}

// @Summary		Get household
// @Description	Returns a household with its members and cost shares. Only members can see their household.
// @Tags			Households
// @Produce		json
// @Success		200	{object}	HouseholdResponse
// @Failure		400	{object}	HouseholdResponse
// @Failure		401	{object}	httpError
// @Failure		403	{object}	HouseholdResponse
// @Failure		404	{object}	HouseholdResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id} [get]
func GetHousehold(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	if !user.InHousehold(household.ID) {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), HouseholdResponse{Error: &s})
		return
	}

	data, err := newHousehold(c, models.DB, household)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, HouseholdResponse{Data: &data})
}

// @Summary		Update household
// @Description	Updates name or currency of the household. Admin only.
// @Tags			Households
// @Accept			json
// @Produce		json
// @Success		200			{object}	HouseholdResponse
// @Failure		400			{object}	HouseholdResponse
// @Failure		401			{object}	httpError
// @Failure		403			{object}	HouseholdResponse
// @Failure		404			{object}	HouseholdResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			household	body		HouseholdEditable	true	"Household"
// @Router			/v1/households/{id} [patch]
func UpdateHousehold(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	if household.AdminID != user.ID {
		s := models.ErrNotAuthorized.Error()
		c.JSON(status(models.ErrNotAuthorized), HouseholdResponse{Error: &s})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, HouseholdEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	var data HouseholdEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	// The BeforeSave hook only sees the loaded record on partial updates,
	// so the incoming currency is checked here
	if slices.Contains(updateFields, any("Currency")) && !models.ValidCurrency(data.Currency) {
		s := models.ErrCurrencyInvalid.Error()
		c.JSON(status(models.ErrCurrencyInvalid), HouseholdResponse{Error: &s})
		return
	}

	err = models.DB.Model(&household).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	r, err := newHousehold(c, models.DB, household)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, HouseholdResponse{Data: &r})
}

// @Summary		Join household
// @Description	Adds the authenticated user to the household. All cost shares are recomputed.
// @Tags			Households
// @Produce		json
// @Success		201	{object}	HouseholdResponse
// @Failure		400	{object}	HouseholdResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	HouseholdResponse
// @Failure		409	{object}	HouseholdResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/households/{id}/members [post]
func JoinHousehold(c *gin.Context) {
	user := actor(c)

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	if user.HouseholdID != nil {
		s := models.ErrAlreadyInHousehold.Error()
		c.JSON(status(models.ErrAlreadyInHousehold), HouseholdResponse{Error: &s})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := household.AddMember(tx, user)
		if err != nil {
			return err
		}

		return tx.Model(&user).Update("household_id", household.ID).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	data, err := newHousehold(c, models.DB, household)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), HouseholdResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, HouseholdResponse{Data: &data})
}

// @Summary		Remove household member
// @Description	Removes a member and recomputes all cost shares. Members remove themselves, the admin can remove anyone. When the admin leaves, the longest-standing member takes over. The last member leaving dissolves the household.
// @Tags			Households
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id		path	URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			userId	path	string	true	"ID of the member to remove"
// @Router			/v1/households/{id}/members/{userId} [delete]
func RemoveHouseholdMember(c *gin.Context) {
	user := actor(c)

	var uri URIMemberID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var household models.Household
	err = models.DB.First(&household, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	// Only the member themselves or the admin may remove a membership
	if user.ID != uri.UserID.UUID && user.ID != household.AdminID {
		c.JSON(status(models.ErrNotAuthorized), httpError{Error: models.ErrNotAuthorized.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		_, err := household.RemoveMember(tx, uri.UserID.UUID)
		if err != nil {
			return err
		}

		return tx.Model(&models.User{}).Where("id = ?", uri.UserID.UUID).Update("household_id", nil).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
