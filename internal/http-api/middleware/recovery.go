package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns panics into the same JSON error shape the handlers emit.
// The panic value only reaches the client outside release mode.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)

		msg := "internal server error"
		if gin.Mode() != gin.ReleaseMode {
			msg = fmt.Sprintf("%v", recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": msg})
	})
}
