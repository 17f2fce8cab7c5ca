package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireEmployee invité: redirection vers la connexion, client: 403
func RequireEmployee(c *gin.Context) {
	if !IsAuthenticated(c) {
		redirectToLogin(c)
		return
	}
	if !IsEmployee(c) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.Next()
}
