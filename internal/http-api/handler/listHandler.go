package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"animalist/internal/http-api/dto"
	"animalist/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ListHandler struct {
	svc service.ListService
}

func NewListHandler(svc service.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

func (h *ListHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.POST("", auth, h.SetStatus)
	rg.DELETE("/:titleId", auth, h.Remove)
	rg.GET("/mine", auth, h.ListMine)
}

func (h *ListHandler) SetStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var in dto.SetStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), userID, in); err != nil {
		switch {
		case errors.Is(err, service.ErrTitleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "title not found"})
		case errors.Is(err, service.ErrInvalidListStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list status"})
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"title_id": in.TitleID, "status": in.Status})
}

func (h *ListHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	titleID, err := strconv.ParseInt(c.Param("titleId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title id"})
		return
	}

	if err := h.svc.Remove(c.Request.Context(), userID, titleID); err != nil {
		if errors.Is(err, service.ErrListEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "list entry not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListHandler) ListMine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	page, limit := parsePagination(c, 20)
	status := strings.TrimSpace(c.Query("status"))

	resp, err := h.svc.ListForUser(c.Request.Context(), userID, status, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidListStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid list status"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
