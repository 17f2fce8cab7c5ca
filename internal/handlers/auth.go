package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/middleware"
	"ayana_shop/internal/services"
)

// AccountHandler pages Identity: inscription, confirmation, connexion
type AccountHandler struct {
	view         *View
	accounts     *services.AccountService
	secureCookie bool
	log          logrus.FieldLogger
}

func NewAccountHandler(view *View, accounts *services.AccountService, secureCookie bool, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{view: view, accounts: accounts, secureCookie: secureCookie, log: log}
}

var registerMessages = map[error]string{
	services.ErrEmailRequired:    "Email and password are required.",
	services.ErrPasswordTooShort: "The password must be at least 6 characters long.",
	services.ErrPasswordMismatch: "The password and confirmation password do not match.",
	services.ErrEmailTaken:       "An account with this email already exists.",
}

func (h *AccountHandler) RegisterForm(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "account_register.html", nil)
}

func (h *AccountHandler) Register(c *gin.Context) {
	reg := services.Registration{
		Email:           c.PostForm("Email"),
		FullName:        c.PostForm("FullName"),
		Password:        c.PostForm("Password"),
		ConfirmPassword: c.PostForm("ConfirmPassword"),
	}

	user, err := h.accounts.Register(c.Request.Context(), reg)
	if msg, known := userMessage(err, registerMessages); known {
		h.view.HTML(c, http.StatusBadRequest, "account_register.html", gin.H{
			"Email":    reg.Email,
			"FullName": reg.FullName,
			"Error":    msg,
		})
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/Identity/Account/RegisterConfirmation?email="+url.QueryEscape(user.Email))
}

// RegisterConfirmationForm saisie du code reçu par email
func (h *AccountHandler) RegisterConfirmationForm(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}
	user, err := h.accounts.ByEmail(c.Request.Context(), email)
	if errors.Is(err, services.ErrNotFound) {
		h.view.Error(c, http.StatusNotFound, "Unable to load user with email '"+email+"'.")
		return
	}
	if err != nil {
		h.view.Internal(c, err)
		return
	}
	h.view.HTML(c, http.StatusOK, "account_register_confirmation.html", gin.H{
		"Email":     user.Email,
		"Confirmed": user.EmailConfirmed,
	})
}

func (h *AccountHandler) RegisterConfirmation(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("Email"))
	if email == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	err := h.accounts.ConfirmEmail(c.Request.Context(), email, c.PostForm("Code"))
	switch {
	case errors.Is(err, services.ErrNotFound):
		h.view.Error(c, http.StatusNotFound, "Unable to load user with email '"+email+"'.")
	case errors.Is(err, services.ErrInvalidCode):
		h.view.HTML(c, http.StatusBadRequest, "account_register_confirmation.html", gin.H{
			"Email": email,
			"Error": "The verification code is invalid or has expired.",
		})
	case err != nil:
		h.view.Internal(c, err)
	default:
		h.view.Flash(c, "Thank you for confirming your email. You can now log in.")
		c.Redirect(http.StatusFound, middleware.LoginPath)
	}
}

func (h *AccountHandler) ResendCode(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("Email"))
	if err := h.accounts.ResendCode(c.Request.Context(), email); err != nil && !errors.Is(err, services.ErrNotFound) {
		h.view.Internal(c, err)
		return
	}
	h.view.Flash(c, "Verification email sent. Please check your inbox.")
	c.Redirect(http.StatusFound, "/Identity/Account/RegisterConfirmation?email="+url.QueryEscape(email))
}

func (h *AccountHandler) LoginForm(c *gin.Context) {
	h.view.HTML(c, http.StatusOK, "account_login.html", gin.H{"ReturnUrl": c.Query("ReturnUrl")})
}

func (h *AccountHandler) Login(c *gin.Context) {
	email := c.PostForm("Email")
	returnURL := c.PostForm("ReturnUrl")

	_, token, err := h.accounts.Login(c.Request.Context(), email, c.PostForm("Password"))
	switch {
	case errors.Is(err, services.ErrLockedOut):
		h.view.HTML(c, http.StatusTooManyRequests, "account_lockout.html", nil)
		return
	case errors.Is(err, services.ErrEmailNotConfirmed):
		h.loginError(c, email, returnURL, services.MsgEmailNotConfirmed)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		h.loginError(c, email, returnURL, services.MsgInvalidLogin)
		return
	case err != nil:
		h.view.Internal(c, err)
		return
	}

	middleware.SetAuthCookie(c, token, h.secureCookie)
	c.Redirect(http.StatusFound, safeRedirect(returnURL))
}

func (h *AccountHandler) loginError(c *gin.Context, email, returnURL, msg string) {
	h.view.HTML(c, http.StatusUnauthorized, "account_login.html", gin.H{
		"Email":     email,
		"ReturnUrl": returnURL,
		"Error":     msg,
	})
}

func (h *AccountHandler) Logout(c *gin.Context) {
	middleware.ClearAuthCookie(c)
	c.Redirect(http.StatusFound, "/")
}
