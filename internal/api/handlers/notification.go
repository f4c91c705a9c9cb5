package handlers

import (
	"errors"
	"net/http"

	"transport-backend/internal/models"
	"transport-backend/internal/repository"
	"transport-backend/internal/services"
	"transport-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications returns the feed visible to a (role, email) pair: the
// role's broadcasts plus the user's scoped entries, with the unread count
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	role := c.Query("role")
	if role == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Role is required", nil)
		return
	}
	email := c.Query("email")

	feed, err := h.notificationService.GetFeed(models.Role(role), email)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve notifications", err)
		return
	}

	c.JSON(http.StatusOK, feed)
}

// MarkAsRead flips the read flag of one notification
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	notificationID := c.Param("id")

	notification, err := h.notificationService.MarkAsRead(notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Notification not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notification as read", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification marked as read", notification)
}

type markAllAsReadRequest struct {
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// MarkAllAsRead flips every unread notification visible to the pair
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	var req markAllAsReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if req.Role == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "Role is required", nil)
		return
	}

	if err := h.notificationService.MarkAllAsRead(models.Role(req.Role), req.Email); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notifications as read", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "All notifications marked as read", nil)
}

// DeleteNotification removes a notification from the feed
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID := c.Param("id")

	if err := h.notificationService.Delete(notificationID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) || errors.Is(err, repository.ErrInvalidID) {
			utils.ErrorResponse(c, http.StatusNotFound, "Notification not found", err)
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete notification", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Notification deleted", nil)
}

// GetDeadLetters exposes recent failed dispatches from the fire-and-forget
// side channel
func (h *NotificationHandler) GetDeadLetters(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Dead letters retrieved successfully", h.notificationService.DeadLetters())
}
