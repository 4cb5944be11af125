package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
	"github.com/comitanigiacomo/kanso-planner/internal/core/services"
)

type ScheduleHandler struct {
	svc *services.ScheduleService
}

func NewScheduleHandler(svc *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{svc: svc}
}

type assignRequest struct {
	ListID *string `json:"list_id"`
}

type swapRequest struct {
	From *int `json:"from" binding:"required"`
	To   *int `json:"to" binding:"required"`
}

func (h *ScheduleHandler) RegisterRoutes(router *gin.RouterGroup) {
	schedule := router.Group("/schedule")
	{
		schedule.GET("", h.Get)
		schedule.GET("/today", h.Today)
		schedule.POST("/reload", h.Reload)
		schedule.POST("/swap", h.Swap)
		schedule.PUT("/:day", h.Assign)
	}
}

// Get godoc
// @Summary  Current weekly schedule
// @Tags     schedule
// @Produce  json
// @Success  200 {object} domain.ScheduleSnapshot
// @Router   /schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// Reload godoc
// @Summary  Reload and reconcile the schedule from storage
// @Tags     schedule
// @Produce  json
// @Success  200 {object} domain.ScheduleSnapshot
// @Failure  503 {object} map[string]string
// @Router   /schedule/reload [post]
func (h *ScheduleHandler) Reload(c *gin.Context) {
	if err := h.svc.LoadAndReconcile(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Snapshot())
}

// Assign godoc
// @Summary  Assign a list to a day, or clear it with a null list_id
// @Tags     schedule
// @Accept   json
// @Produce  json
// @Param    day  path string        true "monday..sunday"
// @Param    body body assignRequest true "Assignment"
// @Success  200 {array} domain.ScheduleItem
// @Failure  400 {object} map[string]string
// @Router   /schedule/{day} [put]
func (h *ScheduleHandler) Assign(c *gin.Context) {
	day, err := domain.ParseDay(c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.AssignListToDay(c.Request.Context(), day, req.ListID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Items())
}

// Swap godoc
// @Summary  Swap the assignments of two days by index (0 = monday)
// @Tags     schedule
// @Accept   json
// @Produce  json
// @Param    body body swapRequest true "Indices"
// @Success  200 {array} domain.ScheduleItem
// @Failure  400 {object} map[string]string
// @Router   /schedule/swap [post]
func (h *ScheduleHandler) Swap(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.ReorderBySwap(c.Request.Context(), *req.From, *req.To); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Items())
}

// Today godoc
// @Summary  The list assigned to the current day
// @Tags     schedule
// @Produce  json
// @Success  200 {object} domain.TodaysAssignment
// @Router   /schedule/today [get]
func (h *ScheduleHandler) Today(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.TodaysAssignment())
}
