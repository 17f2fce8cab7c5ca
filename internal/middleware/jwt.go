package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/models"
	"ayana_shop/internal/services"
	"ayana_shop/internal/utils"
)

const (
	CookieName = "ayana_token"

	ContextUserID    = "user_id"
	ContextEmail     = "email"
	ContextRole      = "role"
	ContextUserState = "user_state"
)

// Authenticate lit le JWT du cookie; sans token valide la requête continue en invité
func Authenticate(secret []byte, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Set(ContextUserState, services.NewUserState())
			c.Next()
			return
		}

		claims, err := utils.ParseJWT(token, secret)
		if err != nil {
			log.WithError(err).Debug("🔐 Token invalide, cookie supprimé")
			ClearAuthCookie(c)
			c.Set(ContextUserState, services.NewUserState())
			c.Next()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextUserState, services.StateFor(true))
		c.Next()
	}
}

func SetAuthCookie(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(utils.TokenTTL.Seconds()), "/", "", secure, true)
}

func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

func IsAuthenticated(c *gin.Context) bool {
	return UserID(c) != ""
}

func IsEmployee(c *gin.Context) bool {
	return c.GetString(ContextRole) == models.RoleEmployee
}

// UserState état du visiteur posé par Authenticate, invité par défaut
func UserState(c *gin.Context) *services.UserState {
	if v, ok := c.Get(ContextUserState); ok {
		if s, ok := v.(*services.UserState); ok {
			return s
		}
	}
	return services.NewUserState()
}
