package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/httputil"
	"github.com/nisequence/two-sense/internal/models"
	"gorm.io/gorm"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup, tokens *auth.TokenManager) {
	// Unauthenticated routes
	{
		r.OPTIONS("/register", OptionsUserRegister)
		r.POST("/register", Register(tokens))
		r.OPTIONS("/login", OptionsUserLogin)
		r.POST("/login", Login(tokens))
	}

	// Own profile
	me := r.Group("/me", SessionMiddleware(tokens))
	{
		me.OPTIONS("", OptionsUserMe)
		me.GET("", GetMe)
		me.PATCH("", UpdateMe)
		me.DELETE("", DeleteMe)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/register [options]
func OptionsUserRegister(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/login [options]
func OptionsUserLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users/me [options]
func OptionsUserMe(c *gin.Context) {
	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Register
// @Description	Creates a new user account and returns a session for it
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		201		{object}	SessionResponse
// @Failure		400		{object}	SessionResponse
// @Failure		409		{object}	SessionResponse
// @Failure		500		{object}	SessionResponse
// @Param			user	body		RegisterRequest	true	"User"
// @Router			/v1/users/register [post]
func Register(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request RegisterRequest
		err := httputil.BindData(c, &request)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		hash, err := auth.HashPassword(request.Password)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		if request.DisplayName == "" {
			request.DisplayName = request.Handle
		}

		user := models.User{
			Handle:       request.Handle,
			Email:        request.Email,
			DisplayName:  request.DisplayName,
			PasswordHash: hash,
		}

		err = models.DB.Create(&user).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			s := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
			return
		}

		c.JSON(http.StatusCreated, SessionResponse{Data: &Session{
			User:  newUser(c, user),
			Token: token,
		}})
	}
}

// @Summary		Login
// @Description	Verifies credentials and returns a session
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200			{object}	SessionResponse
// @Failure		400			{object}	SessionResponse
// @Failure		401			{object}	SessionResponse
// @Failure		500			{object}	SessionResponse
// @Param			credentials	body		LoginRequest	true	"Credentials"
// @Router			/v1/users/login [post]
func Login(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request LoginRequest
		err := httputil.BindData(c, &request)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		var user models.User
		err = models.DB.First(&user, "email = ?", request.Email).Error
		if err != nil {
			// A wrong email reads exactly like a wrong password
			s := auth.ErrInvalidCredentials.Error()
			c.JSON(status(auth.ErrInvalidCredentials), SessionResponse{Error: &s})
			return
		}

		err = auth.ComparePassword(user.PasswordHash, request.Password)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), SessionResponse{Error: &s})
			return
		}

		token, err := tokens.Issue(user.ID)
		if err != nil {
			s := models.ErrGeneral.Error()
			c.JSON(http.StatusInternalServerError, SessionResponse{Error: &s})
			return
		}

		c.JSON(http.StatusOK, SessionResponse{Data: &Session{
			User:  newUser(c, user),
			Token: token,
		}})
	}
}

// @Summary		Get own profile
// @Description	Returns the profile of the authenticated user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Router			/v1/users/me [get]
func GetMe(c *gin.Context) {
	user := actor(c)
	data := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update own profile
// @Description	Updates the profile. Only values to be updated need to be specified. A new display name is mirrored into the household membership.
// @Tags			Users
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		401		{object}	httpError
// @Failure		409		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users/me [patch]
func UpdateMe(c *gin.Context) {
	user := actor(c)

	bodyFields, err := httputil.GetBodyFields(c, UserEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	var data UserEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	changes := models.User{
		DisplayName: data.DisplayName,
		Email:       data.Email,
	}

	// A password change is stored as its hash
	updateFields := make([]any, 0, len(bodyFields))
	for _, field := range bodyFields {
		if field == "Password" {
			changes.PasswordHash, err = auth.HashPassword(data.Password)
			if err != nil {
				s := err.Error()
				c.JSON(status(err), UserResponse{Error: &s})
				return
			}
			updateFields = append(updateFields, "PasswordHash")
			continue
		}

		updateFields = append(updateFields, field)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&user).Select("", updateFields...).Updates(changes).Error
		if err != nil {
			return err
		}

		// Mirror the new display name into the membership ledger
		if changes.DisplayName != "" && user.HouseholdID != nil {
			var household models.Household
			err = tx.First(&household, "id = ?", user.HouseholdID).Error
			if err != nil {
				return err
			}

			return household.RenameMember(tx, user.ID, changes.DisplayName)
		}

		return nil
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{Error: &s})
		return
	}

	data2 := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data2})
}

// @Summary		Close account
// @Description	Leaves the household if affiliated, then permanently deletes the account
// @Tags			Users
// @Success		204
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/users/me [delete]
func DeleteMe(c *gin.Context) {
	user := actor(c)

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		if user.HouseholdID != nil {
			var household models.Household
			err := tx.First(&household, "id = ?", user.HouseholdID).Error
			if err != nil {
				return err
			}

			_, err = household.RemoveMember(tx, user.ID)
			if err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
