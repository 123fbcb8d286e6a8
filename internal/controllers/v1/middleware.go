package v1

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nisequence/two-sense/internal/auth"
	"github.com/nisequence/two-sense/internal/models"
)

const contextActor = "two-sense-actor"

// SessionMiddleware validates the bearer token on the request and resolves
// the persisted user record it belongs to. Handlers behind this middleware
// can rely on actor(c) returning a current user.
func SessionMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(status(auth.ErrMissingToken), httpError{
				Error: auth.ErrMissingToken.Error(),
			})
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := tokens.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", userID).Error
		if err != nil {
			c.AbortWithStatusJSON(status(auth.ErrInvalidToken), httpError{
				Error: auth.ErrInvalidToken.Error(),
			})
			return
		}

		c.Set(contextActor, user)
		c.Next()
	}
}

// actor returns the authenticated user for the request.
func actor(c *gin.Context) models.User {
	return c.MustGet(contextActor).(models.User)
}
