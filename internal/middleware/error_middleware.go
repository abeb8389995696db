package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/pkg/apperrors"
	"github.com/arjun/projecthub/internal/pkg/logger"
)

// errorMapping ties a sentinel error to its HTTP representation
type errorMapping struct {
	err     error
	status  int
	code    dto.ErrorCode
	message string
}

var errorMappings = []errorMapping{
	// Authentication
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid email or password"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenRevoked, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Token revoked"},
	{apperrors.ErrOTPInvalid, http.StatusBadRequest, dto.ErrorCodeInvalidOTP, "Invalid or expired verification code"},

	// Identity
	{apperrors.ErrUserNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found"},
	{apperrors.ErrProfileNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Profile not found"},
	{apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already registered"},
	{apperrors.ErrRollNumberExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Roll number already registered"},
	{apperrors.ErrCoordinatorLimitReached, http.StatusConflict, dto.ErrorCodeResourceConflict, "Coordinator limit reached for this school"},

	// Groups and invites
	{apperrors.ErrGroupNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Group not found"},
	{apperrors.ErrNotInGroup, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "You are not in a group"},
	{apperrors.ErrGroupFull, http.StatusConflict, dto.ErrorCodeResourceConflict, "Group is already full"},
	{apperrors.ErrStudentUnavailable, http.StatusConflict, dto.ErrorCodeResourceConflict, "Student is not available for invitation"},
	{apperrors.ErrInviteNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Invite not found"},
	{apperrors.ErrInviteAlreadySent, http.StatusConflict, dto.ErrorCodeResourceConflict, "Invite already sent"},

	// Supervision
	{apperrors.ErrSupervisorNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Supervisor not found"},
	{apperrors.ErrGroupHasSupervisor, http.StatusConflict, dto.ErrorCodeResourceConflict, "Group already has a supervisor"},
	{apperrors.ErrGroupHasNoSupervisor, http.StatusConflict, dto.ErrorCodeResourceConflict, "Group has no supervisor yet"},
	{apperrors.ErrSupervisorAtCapacity, http.StatusConflict, dto.ErrorCodeResourceConflict, "Supervisor already holds the maximum number of groups"},
	{apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Supervision request not found"},
	{apperrors.ErrRequestAlreadySent, http.StatusConflict, dto.ErrorCodeResourceConflict, "Request already sent to this supervisor"},
	{apperrors.ErrRequestLimitReached, http.StatusConflict, dto.ErrorCodeResourceConflict, "Pending request limit reached"},
	{apperrors.ErrChangeRequestPending, http.StatusConflict, dto.ErrorCodeResourceConflict, "A change request is already pending"},
	{apperrors.ErrChangeRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Change request not found"},
	{apperrors.ErrSameSupervisor, http.StatusConflict, dto.ErrorCodeResourceConflict, "Requested supervisor already supervises this group"},
	{apperrors.ErrSchoolMismatch, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Supervisor belongs to a different school"},

	// Panels and marks
	{apperrors.ErrPanelExists, http.StatusConflict, dto.ErrorCodeResourceConflict, "Group already has a panel"},
	{apperrors.ErrPanelSize, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "A panel needs exactly three distinct supervisors"},
	{apperrors.ErrStudentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found"},
	{apperrors.ErrNotGroupSupervisor, http.StatusForbidden, dto.ErrorCodeForbidden, "You do not evaluate this group"},

	// Common
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request"},
}

// HandleAPIError translates service errors into the standard error envelope.
// Unmapped errors are logged and returned as an opaque 500.
func HandleAPIError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, m.message)))
			return
		}
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled API error")
	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
}

// HandleBindingError returns a 400 carrying the first validation failure
func HandleBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
}
