package insight

import (
	"errors"
	"net/http"

	"gymdesk/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      At-risk members
// @Description  Admin-only: relays the AI collaborator's churn assessment. Degrades to a single error message when the service is unreachable or returns an invalid shape.
// @Tags         admin,insights
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} insight.InsightResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      502 {object} api.ErrorResponse
// @Router       /admin/insights/at-risk [get]
func (h *Handler) AtRiskMembers(c *gin.Context) {
	result, err := h.service.GetAtRiskMembers(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrInsightUnavailable):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to assemble member data"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
