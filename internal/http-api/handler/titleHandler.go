package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/middleware"
	"animalist/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	// Admin-only routes
	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
	rg.PUT("/:id", auth, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:id", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *TitleHandler) List(c *gin.Context) {
	page, limit := parsePagination(c, 20)

	filters := dto.TitleFilters{
		Search:  strings.TrimSpace(c.Query("search")),
		Status:  strings.TrimSpace(c.Query("status")),
		OrderBy: strings.TrimSpace(c.Query("order_by")),
		Order:   strings.TrimSpace(c.Query("order")),
	}

	if g := strings.TrimSpace(c.Query("genre")); g != "" {
		id, err := strconv.ParseInt(g, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid genre parameter"})
			return
		}
		filters.GenreID = id
	}

	if y := strings.TrimSpace(c.Query("min_year")); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_year parameter"})
			return
		}
		filters.MinYear = year
	}

	resp, err := h.svc.List(c.Request.Context(), filters, page, limit)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "one or more genre ids do not exist"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToTitleResponse(*title))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, in); err != nil {
		switch {
		case errors.Is(err, service.ErrTitleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		case errors.Is(err, service.ErrGenreNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "one or more genre ids do not exist"})
		default:
			internalError(c, err)
		}
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrTitleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
