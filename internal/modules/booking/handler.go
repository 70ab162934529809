package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusbook/internal/domain"
	"campusbook/internal/pkg/response"
)

// kindPaths maps URL segments to resource kinds; every booking route exists
// once per kind.
var kindPaths = map[string]domain.ResourceKind{
	"equipment": domain.KindEquipment,
	"labs":      domain.KindLab,
	"rooms":     domain.KindRoom,
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the user-facing booking endpoints on rg, which must
// already carry the auth middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	for path, kind := range kindPaths {
		k := kind
		rg.POST("/"+path+"/bookings", func(c *gin.Context) { h.createBooking(c, k) })
		rg.GET("/"+path+"/bookings", func(c *gin.Context) { h.listMyBookings(c, k) })
	}
}

// RegisterAdminRoutes mounts the status transition endpoint; rg must carry
// the admin role middleware.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	for path, kind := range kindPaths {
		k := kind
		rg.PATCH("/"+path+"/bookings/:id/status", func(c *gin.Context) { h.updateStatus(c, k) })
	}
}

func (h *Handler) createBooking(c *gin.Context, kind domain.ResourceKind) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")

	b, err := h.service.CreateBooking(c.Request.Context(), kind, userID, req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.FieldErrors(c, verr.Fields)
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booking": BookingResponse{
			ID:        b.ID,
			Reference: b.Reference,
			Status:    string(b.Status),
			CreatedAt: b.CreatedAt,
		},
	})
}

func (h *Handler) listMyBookings(c *gin.Context, kind domain.ResourceKind) {
	userID := c.GetInt64("user_id")

	items, err := h.service.ListMyBookings(c.Request.Context(), kind, userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list bookings")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bookings": items})
}

func (h *Handler) updateStatus(c *gin.Context, kind domain.ResourceKind) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	actor := domain.Session{
		UserID: c.GetInt64("user_id"),
		Role:   domain.Role(c.GetString("role")),
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), kind, bookingID, actor, domain.BookingStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin role required")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrInvalidStatusTransition):
			response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Booking status cannot change that way")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking": BookingResponse{
			ID:        b.ID,
			Reference: b.Reference,
			Status:    string(b.Status),
			CreatedAt: b.CreatedAt,
		},
	})
}
