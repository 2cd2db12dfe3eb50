package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitly/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

type EventHandler struct {
	svc *services.EventService
}

func NewEventHandler(svc *services.EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

type recordEventRequest struct {
	Date       string `json:"date" binding:"omitempty,isodate"`
	MoodBefore string `json:"mood_before" binding:"omitempty,mood"`
	MoodAfter  string `json:"mood_after" binding:"omitempty,mood"`
}

func (h *EventHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/habits/:id/events", h.Record)
	router.GET("/habits/:id/events", h.ListByHabit)
	router.DELETE("/habits/:id/events", h.DeleteByDate)
	router.DELETE("/events/:id", h.Delete)
}

func (h *EventHandler) Record(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req recordEventRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	var date time.Time
	if req.Date != "" {
		d, err := domain.ParseDate(req.Date)
		if err != nil {
			handleError(c, err)
			return
		}
		date = d
	}

	event, err := h.svc.Record(c.Request.Context(), services.RecordEventInput{
		HabitID:    c.Param("id"),
		UserID:     userID,
		Date:       date,
		MoodBefore: req.MoodBefore,
		MoodAfter:  req.MoodAfter,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) ListByHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	events, err := h.svc.ListByHabitID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) DeleteByDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		middleware.AbortMessage(c, http.StatusBadRequest, "date query parameter required")
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		handleError(c, err)
		return
	}

	n, err := h.svc.DeleteByDate(c.Request.Context(), c.Param("id"), userID, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *EventHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
