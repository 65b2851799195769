package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

func (h *Handler) ListMeetings(c *gin.Context) {
	meetings, err := h.services.BrowseService.ListMeetings(c.Request.Context())
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list meetings")
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{
		"meetings": meetings,
	})
}

func (h *Handler) GetMeeting(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "INVALID_ID", "meeting id must be an integer")
		return
	}

	details, err := h.services.BrowseService.GetMeeting(c.Request.Context(), id, h.now(c))
	if err != nil {
		if errors.Is(err, domain.ErrMeetingNotFound) {
			h.errorResponse(c, http.StatusNotFound, "NOT_FOUND", "meeting not found")
			return
		}
		h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to get meeting")
		return
	}

	h.successResponse(c, http.StatusOK, details)
}

func (h *Handler) LiveMeetings(c *gin.Context) {
	meetings, err := h.services.BrowseService.LiveMeetings(c.Request.Context(), h.now(c))
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list live meetings")
		return
	}

	h.successResponse(c, http.StatusOK, gin.H{
		"meetings": meetings,
	})
}

// now honors an explicit ?now=RFC3339 override, falling back to the wall
// clock.
func (h *Handler) now(c *gin.Context) time.Time {
	if nowParam := c.Query("now"); nowParam != "" {
		if parsed, err := time.Parse(time.RFC3339, nowParam); err == nil {
			return parsed
		}
	}
	return time.Now()
}
