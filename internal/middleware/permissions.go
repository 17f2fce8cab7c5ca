package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const LoginPath = "/Identity/Account/Login"

// RequireAuth pages client, les invités sont renvoyés vers la connexion
func RequireAuth(c *gin.Context) {
	if !IsAuthenticated(c) {
		redirectToLogin(c)
		return
	}
	c.Next()
}

func redirectToLogin(c *gin.Context) {
	target := LoginPath + "?ReturnUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, target)
	c.Abort()
}
