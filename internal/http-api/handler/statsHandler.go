package handler

import (
	"net/http"
	"strconv"

	"animalist/internal/http-api/middleware"
	"animalist/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const defaultRecentLimit = 10

type StatsHandler struct {
	svc service.StatsService
}

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/dashboard", auth, middleware.RequireAdmin(), h.Dashboard)
	rg.GET("/titles/recent", auth, middleware.RequireAdmin(), h.RecentTitles)
	rg.GET("/users/recent", auth, middleware.RequireAdmin(), h.RecentUsers)
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StatsHandler) RecentTitles(c *gin.Context) {
	limit := parseRecentLimit(c)
	titles, err := h.svc.RecentTitles(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"titles": titles})
}

func (h *StatsHandler) RecentUsers(c *gin.Context) {
	limit := parseRecentLimit(c)
	users, err := h.svc.RecentUsers(c.Request.Context(), limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func parseRecentLimit(c *gin.Context) int {
	limit := defaultRecentLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxPageSize {
			limit = parsed
		}
	}
	return limit
}
