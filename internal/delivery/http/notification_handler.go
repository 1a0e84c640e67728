package http

import (
	"net/http"
	"strconv"

	"github.com/kengni1234/kengni-finance-v2/internal/service"
	"github.com/kengni1234/kengni-finance-v2/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultNotificationLimit = 50

// NotificationHandler handles HTTP requests for in-app notifications.
type NotificationHandler struct {
	notificationService service.Notification
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.Notification, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, logger: logger}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetNotifications)
	g.GET("/users/:id/notifications/unread", h.GetUnreadCount)
	g.POST("/notifications/:id/read", h.MarkRead)
}

// GetNotifications godoc
// @Summary List notifications
// @Description Get the user's most recent notifications
// @Tags notifications
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {array} entity.Notification
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/notifications [get]
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	notifications, err := h.notificationService.List(c.Request().Context(), uint(userID), defaultNotificationLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce  json
// @Param   id  path    int true    "User ID"
// @Success 200 {object} map[string]int64
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /users/{id}/notifications/unread [get]
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	count, err := h.notificationService.UnreadCount(c.Request().Context(), uint(userID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, echo.Map{"unread": count})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce  json
// @Param   id       path    int true    "Notification ID"
// @Param   user_id  query   int true    "User ID"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid notification ID"})
	}
	userID, err := strconv.ParseUint(c.QueryParam("user_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid user ID"})
	}

	if err := h.notificationService.MarkRead(c.Request().Context(), uint(id), uint(userID)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
