package attendance

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"gymdesk/internal/api"
	"gymdesk/internal/member"

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

// @Summary      Check a member in
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      201 {object} attendance.Attendance
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/checkin [post]
func (h *Handler) CheckIn(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	a, err := h.service.CheckIn(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record check-in"})
		}
		return
	}

	c.JSON(http.StatusCreated, a)
}

// @Summary      List a member's check-ins
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {array} attendance.Attendance
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/attendance [get]
func (h *Handler) ListMemberAttendance(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	records, err := h.service.GetMemberAttendance(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary      List check-ins for a day
// @Description  Defaults to today; pass date=YYYY-MM-DD for another day.
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date query string false "Day (YYYY-MM-DD)"
// @Success      200 {array} attendance.AttendanceWithMember
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /attendance [get]
func (h *Handler) ListDayAttendance(c *gin.Context) {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := member.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date must be formatted as YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	records, err := h.service.GetDayAttendance(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch attendance"})
		return
	}

	c.JSON(http.StatusOK, records)
}

// @Summary      Daily check-in counts
// @Description  Admin-only: per-day check-in totals for a date range (defaults to the last 30 days).
// @Tags         admin,attendance
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Range start (YYYY-MM-DD)"
// @Param        to query string false "Range end (YYYY-MM-DD)"
// @Success      200 {array} attendance.CheckinsByDay
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/attendance/stats [get]
func (h *Handler) CheckinStats(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := member.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from must be formatted as YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := member.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "to must be formatted as YYYY-MM-DD"})
			return
		}
		// include the whole end day
		to = parsed.AddDate(0, 0, 1).Add(-time.Second)
	}

	stats, err := h.service.GetCheckinStats(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch check-in stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
