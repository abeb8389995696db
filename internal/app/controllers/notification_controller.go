package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
)

// NotificationController handles broadcast notification endpoints
type NotificationController struct {
	notificationService services.INotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.INotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Send publishes a notification to the selected audience
func (c *NotificationController) Send(ctx *gin.Context) {
	var req dto.SendNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	notification, err := c.notificationService.Send(ctx, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("target", req.TargetType).Msg("Notification published")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Notification sent", notification))
}

// Feed returns the newest notifications visible to the caller. Students see
// broadcasts for their branch, supervisors the supervisor feed, and
// coordinators their own recent broadcasts.
func (c *NotificationController) Feed(ctx *gin.Context) {
	var notifications []*models.Notification
	var err error

	switch models.RoleType(ctx.GetString(middleware.ContextRole)) {
	case models.RoleStudent:
		notifications, err = c.notificationService.FeedForStudent(ctx, middleware.UserID(ctx))
	case models.RoleSupervisor:
		notifications, err = c.notificationService.FeedForSupervisor(ctx)
	case models.RoleCoordinator:
		notifications, err = c.notificationService.FeedForCoordinator(ctx, middleware.UserID(ctx))
	default:
		err = apperrors.ErrPermissionDenied
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Notifications retrieved", notifications))
}
