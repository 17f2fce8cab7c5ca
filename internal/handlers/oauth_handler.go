package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/services"
)

type ExternalLoginHandler struct {
	view         *View
	accounts     *services.AccountService
	secureCookie bool
	log          logrus.FieldLogger

	begin    func(http.ResponseWriter, *http.Request)
	complete func(http.ResponseWriter, *http.Request) (goth.User, error)
}

func NewExternalLoginHandler(view *View, accounts *services.AccountService, secureCookie bool, log logrus.FieldLogger) *ExternalLoginHandler {
	return &ExternalLoginHandler{
		view:         view,
		accounts:     accounts,
		secureCookie: secureCookie,
		log:          log,
		begin:        gothic.BeginAuthHandler,
		complete:     gothic.CompleteUserAuth,
	}
}

func withProvider(c *gin.Context) bool {
	provider := c.Param("provider")
	if provider == "" {
		return false
	}
	c.Request = gothic.GetContextWithProvider(c.Request, provider)
	return true
}

func (h *ExternalLoginHandler) Begin(c *gin.Context) {
	if !withProvider(c) {
		h.view.Error(c, http.StatusBadRequest, "No login provider given.")
		return
	}
	h.begin(c.Writer, c.Request)
}

func (h *ExternalLoginHandler) Callback(c *gin.Context) {
	if !withProvider(c) {
		h.view.Error(c, http.StatusBadRequest, "No login provider given.")
		return
	}

	gu, err := h.complete(c.Writer, c.Request)
	if err != nil {
		h.log.WithError(err).Warn("⚠️ Connexion externe refusée")
		h.view.Error(c, http.StatusBadRequest, "Error loading external login information.")
		return
	}

	_, token, err := h.accounts.ExternalLogin(c.Request.Context(), gu.Provider, gu.Email, gu.Name)
	if errors.Is(err, services.ErrEmailRequired) {
		h.view.Error(c, http.StatusBadRequest, "The external provider did not share an email address.")
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.secureCookie)
	c.Redirect(http.StatusFound, "/")
}
