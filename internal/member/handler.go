package member

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"gymdesk/internal/api"
	"gymdesk/internal/logger"
	"gymdesk/internal/media"
	"gymdesk/internal/plan"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service  Service
	uploader media.Uploader
}

func NewHandler(service Service, uploader media.Uploader) *Handler {
	return &Handler{
		service:  service,
		uploader: uploader,
	}
}

// @Summary      Register a member
// @Description  Creates a member with expiry derived from join date and plan duration. Accepts JSON, or multipart form with an optional "image" file; a failed upload falls back to the placeholder image and is reported in upload_error.
// @Tags         members
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateMemberRequest true "Member payload"
// @Success      201 {object} member.CreateMemberResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [post]
func (h *Handler) CreateMember(c *gin.Context) {
	var req CreateMemberRequest
	var uploadError string

	if strings.Contains(c.GetHeader("Content-Type"), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}

		if file, err := c.FormFile("image"); err == nil {
			url, uploadErr := h.uploadImage(c, file)
			if uploadErr != nil {
				// member creation proceeds with the placeholder
				uploadError = uploadErr.Error()
				logger.Errorf("Image upload failed for %s: %v", req.Name, uploadErr)
			} else {
				req.ImageURL = url
			}
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
	}

	m, err := h.service.CreateMember(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Selected plan no longer exists"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "join_date must be formatted as YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create member"})
		}
		return
	}

	c.JSON(http.StatusCreated, CreateMemberResponse{Member: m, UploadError: uploadError})
}

// @Summary      List members
// @Description  Status is re-derived against today's date on every read.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} member.Member
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.service.ListMembers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Get a member
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/{memberID} [get]
func (h *Handler) GetMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	m, err := h.service.GetMember(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Edit a member
// @Description  When plan or join date changed, confirm_expiry_update decides whether expiry is recomputed; omitting it returns 409 so the client can ask.
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.UpdateMemberRequest true "Member payload"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ConfirmationResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID} [put]
func (h *Handler) UpdateMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.UpdateMember(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, plan.ErrPlanNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Selected plan no longer exists"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "join_date must be formatted as YYYY-MM-DD"})
		case errors.Is(err, ErrExpiryConfirmationRequired):
			c.JSON(http.StatusConflict, api.ConfirmationResponse{
				ConfirmationRequired: true,
				Message:              "Plan or join date changed; set confirm_expiry_update to recompute or keep the expiry date",
			})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update member"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Renew a membership
// @Description  The supplied expiry date is authoritative; the member is set active.
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Param        request body member.RenewMemberRequest true "Renewal payload"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID}/renew [post]
func (h *Handler) RenewMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	var req RenewMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.RenewMember(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		case errors.Is(err, ErrInvalidDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "expiry_date must be formatted as YYYY-MM-DD"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to renew membership"})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Delete a member
// @Description  Permanent; payments and attendance records are removed with the member.
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        memberID path int true "Member ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /members/{memberID} [delete]
func (h *Handler) DeleteMember(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("memberID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid member ID"})
		return
	}

	if err := h.service.DeleteMember(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete member"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Member deleted"})
}

func (h *Handler) uploadImage(c *gin.Context, fh *multipart.FileHeader) (string, error) {
	if h.uploader == nil {
		return "", errors.New("image uploads are not configured")
	}

	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	return h.uploader.Upload(c.Request.Context(), fh.Filename, f)
}
