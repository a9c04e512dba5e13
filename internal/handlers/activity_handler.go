package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dukkan-app/dukkan-api/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// @Summary List Activities
// @Description Get the audit trail of user actions
// @Tags Activities
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param entity query string false "Filter by entity"
// @Param action query string false "Filter by action"
// @Param user_id query int false "Filter by user"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) Index(c *gin.Context) {
	query := ParseListQuery(c)
	query.Filters["entity"] = c.Query("entity")
	query.Filters["action"] = c.Query("action")
	query.Filters["user_id"] = c.Query("user_id")

	activities, total, err := h.activityService.List(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities": activities,
		"pagination": paginationResponse(query, total),
	})
}
