package booking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"jobfair/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes binds the booking endpoints onto an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies/:id/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.PUT("/bookings/:id", h.UpdateBooking)
	rg.DELETE("/bookings/:id", h.DeleteBooking)
}

func callerFromContext(c *gin.Context) Caller {
	return Caller{
		ID:   c.GetInt64("user_id"),
		Role: c.GetString("role"),
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company ID")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking date is required")
		return
	}

	b, err := h.service.SubmitBooking(c.Request.Context(), callerFromContext(c), companyID, req.BookingDate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var companyFilter int64
	if raw := c.Query("company_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid company filter")
			return
		}
		companyFilter = v
	}

	views, err := h.service.ListBookings(c.Request.Context(), callerFromContext(c), companyFilter)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":    len(views),
		"bookings": views,
	})
}

func (h *Handler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	view, err := h.service.GetBooking(c.Request.Context(), callerFromContext(c), bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": view})
}

func (h *Handler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var patch UpdateBookingRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.UpdateBooking(c.Request.Context(), callerFromContext(c), bookingID, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), callerFromContext(c), bookingID); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Booking date is required")
	case ErrOutOfWindow:
		response.Error(c, http.StatusBadRequest, "OUT_OF_WINDOW", "Booking date is outside the allowed window")
	case ErrCompanyNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Company not found")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case ErrQuotaExceeded:
		response.Error(c, http.StatusConflict, "QUOTA_EXCEEDED", "Booking limit reached for this user")
	case ErrDuplicateSlot:
		response.Error(c, http.StatusConflict, "DUPLICATE_SLOT", "You already booked this company at the selected time")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to access this booking")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process booking")
	}
}
