package handler

import (
	"errors"
	"net/http"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/middleware"
	"animalist/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
}

func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}

	resp := make([]dto.GenreInfo, 0, len(genres))
	for _, g := range genres {
		resp = append(resp, dto.FromModelToGenreInfo(g))
	}
	c.JSON(http.StatusOK, gin.H{"genres": resp})
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateGenre) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "genre already exists"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToGenreInfo(*genre))
}
