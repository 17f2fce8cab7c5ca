package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const flashSession = "ayana_flash"

// Flash messages d'une requête à la suivante, dans un cookie signé
type Flash struct {
	store sessions.Store
}

func NewFlash(secret []byte, secure bool) *Flash {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flash{store: store}
}

func (f *Flash) Add(c *gin.Context, message string) {
	sess, _ := f.store.Get(c.Request, flashSession)
	sess.AddFlash(message)
	_ = sess.Save(c.Request, c.Writer)
}

func (f *Flash) Pop(c *gin.Context) []string {
	sess, err := f.store.Get(c.Request, flashSession)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request, c.Writer)

	messages := make([]string, 0, len(raw))
	for _, m := range raw {
		if s, ok := m.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}
