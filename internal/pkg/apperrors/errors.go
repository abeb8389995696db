package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Identity errors
var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailAlreadyExists      = errors.New("email already registered")
	ErrRollNumberExists        = errors.New("roll number already registered")
	ErrProfileNotFound         = errors.New("profile not found")
	ErrCoordinatorLimitReached = errors.New("maximum coordinator limit reached for this school")
)

// OTP errors
var (
	ErrOTPInvalid = errors.New("invalid or expired OTP")
)

// Group formation errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrNotInGroup         = errors.New("student is not in a group")
	ErrGroupFull          = errors.New("group already has maximum members")
	ErrStudentUnavailable = errors.New("student is not available for invitation")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteAlreadySent  = errors.New("invite already sent")
)

// Supervisor assignment errors
var (
	ErrSupervisorNotFound    = errors.New("supervisor not found")
	ErrGroupHasSupervisor    = errors.New("group already has a supervisor")
	ErrGroupHasNoSupervisor  = errors.New("group does not have a supervisor")
	ErrSupervisorAtCapacity  = errors.New("supervisor already supervises the maximum number of groups")
	ErrRequestNotFound       = errors.New("supervisor request not found")
	ErrRequestAlreadySent    = errors.New("request already sent to this supervisor")
	ErrRequestLimitReached   = errors.New("maximum supervisor request limit reached")
	ErrChangeRequestPending  = errors.New("a supervisor change request is already pending")
	ErrChangeRequestNotFound = errors.New("supervisor change request not found")
	ErrSameSupervisor        = errors.New("new supervisor cannot be the same as the current supervisor")
	ErrSchoolMismatch        = errors.New("supervisor belongs to a different school")
)

// Panel and marks errors
var (
	ErrPanelExists        = errors.New("panel already exists for this group")
	ErrPanelSize          = errors.New("exactly 3 panel members required")
	ErrStudentNotFound    = errors.New("student not found")
	ErrNotGroupSupervisor = errors.New("only the group's supervisor may assign marks")
)
