package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// parsePagination reads ?page and ?limit with clamping. Malformed or
// non-positive values fall back to the defaults; a limit beyond the cap is
// clamped to maxPageSize rather than discarded.
func parsePagination(c *gin.Context, defaultLimit int) (page, limit int) {
	page = 1
	limit = defaultLimit

	if p := c.DefaultQuery("page", ""); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if l := c.DefaultQuery("limit", ""); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
			if limit > maxPageSize {
				limit = maxPageSize
			}
		}
	}
	return page, limit
}

// internalError hides the underlying message outside of development
func internalError(c *gin.Context, err error) {
	if gin.Mode() == gin.ReleaseMode {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// currentUserID reads the id set by the auth middleware
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
