package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ayana_shop/internal/middleware"
)

const dateLayout = "2006-01-02"

// View rendu des templates avec les données communes à toutes les pages
type View struct {
	flash *Flash
	log   logrus.FieldLogger
}

func NewView(flash *Flash, log logrus.FieldLogger) *View {
	return &View{flash: flash, log: log}
}

func (v *View) HTML(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	state := middleware.UserState(c)
	data["UserStatus"] = state.Status()
	data["IsAuthenticated"] = middleware.IsAuthenticated(c)
	data["IsEmployee"] = middleware.IsEmployee(c)
	data["UserEmail"] = c.GetString(middleware.ContextEmail)
	data["RequestID"] = c.GetString(middleware.ContextRequestID)
	data["Year"] = time.Now().Year()
	if v.flash != nil {
		data["Flashes"] = v.flash.Pop(c)
	}
	c.HTML(status, name, data)
}

// Error vue d'erreur avec l'identifiant de requête
func (v *View) Error(c *gin.Context, status int, message string) {
	v.HTML(c, status, "error.html", gin.H{
		"StatusCode": status,
		"Message":    message,
	})
}

// Internal log + page 500 sans détail technique
func (v *View) Internal(c *gin.Context, err error) {
	v.log.WithError(err).WithFields(logrus.Fields{
		"path":       c.Request.URL.Path,
		"request_id": c.GetString(middleware.ContextRequestID),
	}).Error("❌ Erreur interne")
	v.Error(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

func (v *View) Flash(c *gin.Context, message string) {
	if v.flash != nil {
		v.flash.Add(c, message)
	}
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	return id, err == nil && id > 0
}

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	return t, err == nil
}

// maxPrice au-delà, la saisie est refusée (et Inf/NaN avec)
const maxPrice = 1_000_000

func parsePrice(raw string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(raw), ",", "."), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, false
	}
	return p, p >= 0 && p <= maxPrice
}

// safeRedirect n'accepte que les chemins locaux
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
