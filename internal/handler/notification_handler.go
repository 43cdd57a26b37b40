package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"gatepass/internal/auth"
	"gatepass/internal/errors"
	"gatepass/internal/model"
	"gatepass/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationResponse wraps a single notification.
type NotificationResponse struct {
	Notification *model.Notification `json:"notification"`
}

// NotificationListResponse wraps a notification listing.
type NotificationListResponse struct {
	Notifications []model.Notification `json:"notifications"`
}

// List godoc
// @Summary List the current user's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} NotificationListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	user := auth.CurrentUser(c)
	notifications, err := h.notificationService.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, NotificationListResponse{Notifications: notifications})
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} NotificationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid notification ID",
			Code:  "INVALID_ID",
		})
	}

	notification, err := h.notificationService.MarkRead(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, NotificationResponse{Notification: notification})
}
