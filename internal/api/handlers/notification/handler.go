package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/DannylSyph3r/notification-system/internal/api/respond"
	"github.com/DannylSyph3r/notification-system/internal/ledger"
	"github.com/DannylSyph3r/notification-system/internal/model"
	"github.com/DannylSyph3r/notification-system/internal/service/admission"
)

const correlationIDHeader = "X-Correlation-ID"

// admissionService defines the interface that the Handler depends on.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks
type admissionService interface {
	Admit(ctx context.Context, req model.NotificationRequest, correlationID string) (admission.Result, error)
	GetStatus(ctx context.Context, notificationID string) (model.StatusRecord, error)
}

// Handler handles HTTP requests for admitting notifications and polling
// their delivery status.
type Handler struct {
	service   admissionService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s admissionService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// CreateRequest represents the JSON body expected in a notification
// admission request.
type CreateRequest struct {
	UserID           string                 `json:"user_id" validate:"required,uuid4"`
	NotificationType string                 `json:"notification_type" validate:"required,oneof=EMAIL PUSH"`
	TemplateCode     string                 `json:"template_code" validate:"required"`
	Variables        map[string]interface{} `json:"variables" validate:"required"`
	RequestID        string                 `json:"request_id"`
	Priority         int                    `json:"priority"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// CreateResponse is returned on admission, for both fresh and duplicate
// requests; duplicates differ only by the flag.
type CreateResponse struct {
	NotificationID string `json:"notification_id"`
	Status         string `json:"status"`
	Duplicate      bool   `json:"duplicate,omitempty"`
}

// Create handles POST /api/notifications.
//
// It validates the request body, runs admission, and returns the
// notification id with its status. A detected duplicate returns the prior
// notification id with a 200, not an error.
func (h *Handler) Create(c *ginext.Context) {
	var req CreateRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	correlationID := c.Request.Header.Get(correlationIDHeader)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}

	notifReq := model.NotificationRequest{
		UserID:           req.UserID,
		NotificationType: req.NotificationType,
		TemplateCode:     req.TemplateCode,
		Variables:        req.Variables,
		RequestID:        req.RequestID,
		Priority:         priorityOrDefault(req.Priority),
		Metadata:         req.Metadata,
	}

	result, err := h.service.Admit(c.Request.Context(), notifReq, correlationID)
	if err != nil {
		switch {
		case errors.Is(err, admission.ErrChannelDisabled):
			respond.Fail(c.Writer, http.StatusBadRequest, err)
		default:
			zlog.Logger.Error().Err(err).
				Str("correlation_id", correlationID).
				Msg("failed to admit notification")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		}
		return
	}

	respond.OK(c.Writer, CreateResponse{
		NotificationID: result.NotificationID,
		Status:         result.Status,
		Duplicate:      result.Duplicate,
	})
}

// GetStatus handles GET /api/notifications/:id/status.
func (h *Handler) GetStatus(c *ginext.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		zlog.Logger.Warn().Err(err).Str("id", id).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return
	}

	record, err := h.service.GetStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrStatusNotFound) {
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification status not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("id", id).Msg("failed to get notification status")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, record)
}

func priorityOrDefault(p int) int {
	if p <= 0 {
		return 1
	}

	return p
}
