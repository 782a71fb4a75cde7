package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	captureStatusSuccess = "success"
	captureStatusFailed  = "failed"
)

type bookingHandler struct {
	bookingService portssvc.BookingSvcFacade
}

func newBookingHandler(bs portssvc.BookingSvcFacade) *bookingHandler {
	return &bookingHandler{bookingService: bs}
}

func registerBookingRoutes(authed *gin.RouterGroup, h *bookingHandler) {
	authed.POST("/bookings", h.createBooking)
	authed.GET("/bookings/:id", h.getBooking)
	authed.POST("/bookings/:id/cancel", h.cancelBooking)
	authed.GET("/booking-history", h.bookingHistory)
	authed.POST("/capture-paypal-payment", h.capturePayment)
}

func registerAdminBookingRoutes(admin *gin.RouterGroup, h *bookingHandler) {
	admin.POST("/bookings/:id/cancel", h.cancelBooking)
}

// createBooking godoc
// @Summary Start a booking
// @Description Creates a PENDING booking for one day. The client then creates a PayPal order and calls capture.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Guide post not found or inactive"
// @Failure 409 {object} ErrorResponse "Date unavailable"
// @Security BearerAuth
// @Router /bookings [post]
func (h *bookingHandler) createBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	booking, err := h.bookingService.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create booking")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

// capturePayment godoc
// @Summary Capture a PayPal payment
// @Description Captures the order and confirms the booking atomically. A declined capture answers 400 with status "failed".
// @Tags bookings
// @Accept json
// @Produce json
// @Param capture body dto.CapturePaymentRequest true "Order and booking"
// @Success 200 {object} dto.CapturePaymentResponse
// @Failure 400 {object} dto.CapturePaymentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Slot taken or capture in progress"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /capture-paypal-payment [post]
func (h *bookingHandler) capturePayment(c *gin.Context) {
	var req dto.CapturePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	outcome, err := h.bookingService.ConfirmBooking(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Payment capture failed")
		return
	}
	if !outcome.Confirmed {
		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Capture not completed",
			slog.String("booking_id", req.BookingID), slog.String("provider_status", outcome.ProviderStatus))
		c.JSON(http.StatusBadRequest, dto.CapturePaymentResponse{
			Status:  captureStatusFailed,
			Message: "Payment was not completed (" + outcome.ProviderStatus + ")",
		})
		return
	}
	c.JSON(http.StatusOK, dto.CapturePaymentResponse{Status: captureStatusSuccess, RedirectURL: outcome.RedirectURL})
}

// getBooking godoc
// @Summary Get a booking
// @Description Owners see their bookings, the guide of the post and admins see any.
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} dto.BookingResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{id} [get]
func (h *bookingHandler) getBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetRoleFromContext(c)
	booking, err := h.bookingService.GetBooking(c.Request.Context(), userID, role, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// cancelBooking godoc
// @Summary Cancel a booking
// @Description Owners may cancel PENDING bookings. Admins may also cancel CONFIRMED ones, which releases the day and reverses the guide income.
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param cancel body dto.CancelBookingRequest false "Reason"
// @Success 200 {object} dto.BookingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /bookings/{id}/cancel [post]
func (h *bookingHandler) cancelBooking(c *gin.Context) {
	var req dto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetRoleFromContext(c)
	booking, err := h.bookingService.CancelBooking(c.Request.Context(), userID, role, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// bookingHistory godoc
// @Summary Booking history
// @Description Returns the caller's bookings newest first with the post title.
// @Tags bookings
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.BookingHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /booking-history [get]
func (h *bookingHandler) bookingHistory(c *gin.Context) {
	var params dto.BookingHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, next, err := h.bookingService.BookingHistory(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to retrieve booking history")
		return
	}
	c.JSON(http.StatusOK, dto.ToBookingHistoryResponse(bookings, next))
}
