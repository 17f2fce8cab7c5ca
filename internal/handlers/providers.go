package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/google"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/config"
)

// SetupProviders active la connexion Google si les identifiants sont fournis
func SetupProviders(cfg config.Config, log logrus.FieldLogger) bool {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	gothic.Store = store

	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		log.Info("⚠️  Connexion Google désactivée (GOOGLE_CLIENT_ID absent)")
		return false
	}

	callback := cfg.BaseURL + "/Identity/Account/ExternalLogin/google/callback"
	goth.UseProviders(google.New(cfg.Google.ClientID, cfg.Google.ClientSecret, callback, "email", "profile"))
	log.Info("✅ Connexion Google activée")
	return true
}
