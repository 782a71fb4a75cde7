package handlers

import (
	"net/http"

	portssvc "github.com/borport/borport_backend/internal/core/ports/services"
	"github.com/borport/borport_backend/internal/dto"
	"github.com/borport/borport_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationSvc
}

func newNotificationHandler(ns portssvc.NotificationSvc) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

func registerNotificationRoutes(authed *gin.RouterGroup, h *notificationHandler) {
	n := authed.Group("/notifications")
	{
		n.GET("", h.listNotifications)
		n.POST("", h.createNotification)
		n.PUT("", h.markRead)
	}
}

// listNotifications godoc
// @Summary The caller's notifications
// @Tags notifications
// @Produce json
// @Param unreadOnly query bool false "Only unread"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.NotificationListResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	items, unread, next, err := h.notificationService.ListNotifications(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationListResponse(items, unread, next))
}

// createNotification godoc
// @Summary Create a notification
// @Description Users may only notify themselves. Admins may target any user.
// @Tags notifications
// @Accept json
// @Produce json
// @Param notification body dto.CreateNotificationRequest true "Notification"
// @Success 201 {object} dto.NotificationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [post]
func (h *notificationHandler) createNotification(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	role, _ := middleware.GetRoleFromContext(c)
	n, err := h.notificationService.CreateNotification(c.Request.Context(), userID, role, req)
	if err != nil {
		respondError(c, err, "Failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, dto.ToNotificationResponse(n))
}

// markRead godoc
// @Summary Mark notifications read
// @Description Marks the listed ids, or every notification when all is true.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body dto.MarkNotificationsReadRequest true "Ids or all"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /notifications [put]
func (h *notificationHandler) markRead(c *gin.Context) {
	var req dto.MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	updated, err := h.notificationService.MarkRead(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
