package dto

import (
	"github.com/arjun/projecthub/internal/app/models"
)

// RequestSupervisorRequest asks a supervisor to take the student's group
type RequestSupervisorRequest struct {
	SupervisorID int64 `json:"supervisorId" binding:"required"`
}

// RespondSupervisorRequest accepts or rejects a pending supervision request
type RespondSupervisorRequest struct {
	RequestID int64  `json:"requestId" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=accept reject"`
}

// SupervisorChangeRequestRequest opens a change-of-supervisor request
type SupervisorChangeRequestRequest struct {
	NewSupervisorID int64  `json:"newSupervisorId" binding:"required"`
	Reason          string `json:"reason" binding:"omitempty"`
}

// RespondChangeRequest resolves a change request (coordinator only)
type RespondChangeRequest struct {
	RequestID int64  `json:"requestId" binding:"required"`
	Action    string `json:"action" binding:"required,oneof=approve reject"`
}

// SupervisorDashboard aggregates the supervisor landing page
type SupervisorDashboard struct {
	Supervisor      *models.Supervisor                `json:"supervisor"`
	Groups          []*models.StudentGroup            `json:"groups"`
	PendingRequests []*models.SupervisorRequest       `json:"pendingRequests"`
	ChangeRequests  []*models.SupervisorChangeRequest `json:"changeRequests"`
	Notifications   []*models.Notification            `json:"notifications"`
}

// CoordinatorDashboard aggregates the coordinator landing page
type CoordinatorDashboard struct {
	Coordinator    *models.Coordinator               `json:"coordinator"`
	Groups         []*models.StudentGroup            `json:"groups"`
	Supervisors    []*models.Supervisor              `json:"supervisors"`
	ChangeRequests []*models.SupervisorChangeRequest `json:"changeRequests"`
	Notifications  []*models.Notification            `json:"notifications"`
	Branches       []string                          `json:"branches"`
}
