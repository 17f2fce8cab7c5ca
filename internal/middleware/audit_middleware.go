package middleware

import (
	"github.com/gin-gonic/gin"

	"ayana_shop/internal/services"
)

// Actor employé courant pour l'audit
func Actor(c *gin.Context) services.Actor {
	return services.Actor{
		UserID: UserID(c),
		Email:  c.GetString(ContextEmail),
		IP:     c.ClientIP(),
	}
}

// AuditFailures trace les actions employé refusées ou en erreur.
// Les succès sont audités par les services.
func AuditFailures(auditor services.Auditor, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 400 {
			return
		}
		entry := services.AuditEntry(Actor(c), action, resource, c.Param("id"), c.Request.Method+" "+c.FullPath(), false)
		auditor.Record(c.Request.Context(), entry)
	}
}
