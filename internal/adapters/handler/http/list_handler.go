package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

type ListHandler struct {
	svc *services.ListService
}

func NewListHandler(svc *services.ListService) *ListHandler {
	return &ListHandler{svc: svc}
}

type listRequest struct {
	Name      string             `json:"name"`
	Morning   []domain.HabitItem `json:"morning"`
	Afternoon []domain.HabitItem `json:"afternoon"`
	Evening   []domain.HabitItem `json:"evening"`
}

func (r listRequest) toList(id string) domain.HabitList {
	return domain.HabitList{
		ID:        id,
		Name:      r.Name,
		Morning:   r.Morning,
		Afternoon: r.Afternoon,
		Evening:   r.Evening,
	}
}

type sectionItemRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Emoji string `json:"emoji" binding:"required"`
}

func (h *ListHandler) RegisterRoutes(router *gin.RouterGroup) {
	lists := router.Group("/lists")
	{
		lists.GET("", h.List)
		lists.POST("", h.Create)
		lists.GET("/:id", h.Get)
		lists.PUT("/:id", h.Update)
		lists.DELETE("/:id", h.Delete)
		lists.POST("/:id/sections/:section/items", h.AddSectionItem)
		lists.PUT("/:id/sections/:section", h.ReplaceSection)
	}
}

// List godoc
// @Summary  List habit lists
// @Tags     lists
// @Produce  json
// @Success  200 {array} domain.HabitList
// @Router   /lists [get]
func (h *ListHandler) List(c *gin.Context) {
	lists, err := h.svc.LoadAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// Get godoc
// @Summary  Get a habit list
// @Tags     lists
// @Produce  json
// @Param    id path string true "List ID"
// @Success  200 {object} domain.HabitList
// @Failure  404 {object} map[string]string
// @Router   /lists/{id} [get]
func (h *ListHandler) Get(c *gin.Context) {
	list, ok := h.svc.FindByID(c.Param("id"))
	if !ok {
		respondError(c, domain.ErrListNotFound)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary  Create a habit list
// @Tags     lists
// @Accept   json
// @Produce  json
// @Param    list body listRequest true "List"
// @Success  201 {object} domain.HabitList
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /lists [post]
func (h *ListHandler) Create(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), req.toList(""))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// Update godoc
// @Summary  Replace a habit list in place
// @Tags     lists
// @Accept   json
// @Produce  json
// @Param    id   path string      true "List ID"
// @Param    list body listRequest true "List"
// @Success  200 {object} domain.HabitList
// @Failure  404 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /lists/{id} [put]
func (h *ListHandler) Update(c *gin.Context) {
	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.svc.Save(c.Request.Context(), req.toList(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Delete godoc
// @Summary  Delete a habit list
// @Tags     lists
// @Param    id path string true "List ID"
// @Success  204
// @Router   /lists/{id} [delete]
func (h *ListHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// editor loads the list behind the request into a fresh builder.
func (h *ListHandler) editor(c *gin.Context) (*services.ListBuilder, domain.Section, bool) {
	section, err := domain.ParseSection(c.Param("section"))
	if err != nil {
		respondError(c, err)
		return nil, "", false
	}

	list, ok := h.svc.FindByID(c.Param("id"))
	if !ok {
		respondError(c, domain.ErrListNotFound)
		return nil, "", false
	}

	b := services.NewListBuilder(h.svc)
	b.InitializeForEdit(list)
	return b, section, true
}

// AddSectionItem godoc
// @Summary  Add a habit to a list section
// @Tags     lists
// @Accept   json
// @Produce  json
// @Param    id      path string             true "List ID"
// @Param    section path string             true "morning, afternoon or evening"
// @Param    item    body sectionItemRequest true "Habit"
// @Success  200 {object} domain.HabitList
// @Router   /lists/{id}/sections/{section}/items [post]
func (h *ListHandler) AddSectionItem(c *gin.Context) {
	var req sectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, section, ok := h.editor(c)
	if !ok {
		return
	}

	item, err := domain.NewHabitItem(req.Name, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}
	if id := strings.TrimSpace(req.ID); id != "" {
		item.ID = id
	}

	changed, err := b.AddHabitToSection(item, section)
	if err != nil {
		respondError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, b.Draft())
		return
	}

	saved, err := b.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// ReplaceSection godoc
// @Summary  Replace the ordered habits of a list section
// @Tags     lists
// @Accept   json
// @Produce  json
// @Param    id      path string             true "List ID"
// @Param    section path string             true "morning, afternoon or evening"
// @Param    items   body []domain.HabitItem true "Habits in order"
// @Success  200 {object} domain.HabitList
// @Router   /lists/{id}/sections/{section} [put]
func (h *ListHandler) ReplaceSection(c *gin.Context) {
	var items []domain.HabitItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, section, ok := h.editor(c)
	if !ok {
		return
	}

	if err := b.SetHabitsForSection(items, section); err != nil {
		respondError(c, err)
		return
	}

	saved, err := b.Save(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
