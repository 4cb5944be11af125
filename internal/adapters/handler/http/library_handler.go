package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

type LibraryHandler struct {
	svc *services.LibraryService
}

func NewLibraryHandler(svc *services.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

type habitItemRequest struct {
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji" binding:"required"`
}

func (h *LibraryHandler) RegisterRoutes(router *gin.RouterGroup) {
	library := router.Group("/library")
	{
		library.GET("", h.List)
		library.POST("", h.Create)
		library.PUT("/:id", h.Update)
		library.DELETE("/:id", h.Delete)
	}
}

// List godoc
// @Summary  Habit library
// @Tags     library
// @Produce  json
// @Success  200 {array} domain.HabitItem
// @Router   /library [get]
func (h *LibraryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Items(c.Request.Context()))
}

// Create godoc
// @Summary  Add a habit to the library
// @Tags     library
// @Accept   json
// @Produce  json
// @Param    item body habitItemRequest true "Habit"
// @Success  201 {object} domain.HabitItem
// @Failure  400 {object} map[string]string
// @Router   /library [post]
func (h *LibraryHandler) Create(c *gin.Context) {
	var req habitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Add(c.Request.Context(), req.Name, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary  Edit a library habit
// @Tags     library
// @Accept   json
// @Produce  json
// @Param    id   path string           true "Habit ID"
// @Param    item body habitItemRequest true "Habit"
// @Success  200 {object} domain.HabitItem
// @Failure  404 {object} map[string]string
// @Router   /library/{id} [put]
func (h *LibraryHandler) Update(c *gin.Context) {
	var req habitItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), req.Name, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete godoc
// @Summary  Remove a habit from the library
// @Tags     library
// @Param    id path string true "Habit ID"
// @Success  204
// @Router   /library/{id} [delete]
func (h *LibraryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
