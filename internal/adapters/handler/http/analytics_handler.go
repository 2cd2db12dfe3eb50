package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/habitly/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/habitly/internal/core/domain"
	"github.com/comitanigiacomo/habitly/internal/core/services"
)

type AnalyticsHandler struct {
	svc *services.AnalyticsService
}

func NewAnalyticsHandler(svc *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/habits/:id/analytics", h.HabitAnalytics)
	r.GET("/analytics/summary", h.Summary)
}

// HabitAnalytics reports the streaks of a habit. The optional today query
// parameter evaluates the current streak as of that day.
func (h *AnalyticsHandler) HabitAnalytics(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	input := domain.AnalyticsInput{
		UserID:  userID,
		HabitID: c.Param("id"),
	}

	if todayStr := c.Query("today"); todayStr != "" {
		today, err := domain.ParseDate(todayStr)
		if err != nil {
			middleware.AbortMessage(c, http.StatusBadRequest, "invalid today format, expected YYYY-MM-DD")
			return
		}
		input.Today = today
	}

	report, err := h.svc.HabitAnalytics(c.Request.Context(), input)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.svc.Summary(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
