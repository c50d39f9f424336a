package http

import (
	"errors"
	"net/http"

	notifDomain "buscocredito-backend/internal/domain/notification"
	"buscocredito-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct{ uc *notification.Usecase }

func NewNotificationHandler(uc *notification.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	recipientID := c.Param("recipient_id")
	if !reHex32.MatchString(recipientID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid recipient_id"})
	}
	out, err := h.uc.ListForRecipient(c.Request().Context(), recipientID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type markReadReq struct {
	RecipientID string `json:"recipient_id" validate:"required,hex32"`
}

func (h *NotificationHandler) MarkNotificationRead(c echo.Context) error {
	notificationID := c.Param("notification_id")
	if !reHex32.MatchString(notificationID) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid notification_id"})
	}
	var req markReadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.MarkRead(c.Request().Context(), notificationID, req.RecipientID); err != nil {
		if errors.Is(err, notifDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"read": true})
}
