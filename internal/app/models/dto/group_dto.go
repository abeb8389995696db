package dto

import (
	"github.com/arjun/projecthub/internal/app/models"
)

// SendInviteRequest invites another student into the sender's (future) group
type SendInviteRequest struct {
	ReceiverID int64 `json:"receiverId" binding:"required" example:"17"`
}

// RespondInviteRequest accepts or rejects a pending invite
type RespondInviteRequest struct {
	InviteID int64  `json:"inviteId" binding:"required"`
	Action   string `json:"action" binding:"required,oneof=accept reject" example:"accept"`
}

// UpdateProjectRequest updates the group's project metadata
type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty"`
}

// UpdateDocumentLinkRequest updates the group's shared document link
type UpdateDocumentLinkRequest struct {
	Link string `json:"link" binding:"required,url,max=500"`
}

// GroupDetail is a group together with its member roster
type GroupDetail struct {
	Group   *models.StudentGroup `json:"group"`
	Members []*models.Student    `json:"members"`
}

// StudentDashboard aggregates everything the student landing page needs
type StudentDashboard struct {
	Student           *models.Student                   `json:"student"`
	Group             *models.StudentGroup              `json:"group,omitempty"`
	GroupMembers      []*models.Student                 `json:"groupMembers,omitempty"`
	PendingInvites    []*models.GroupInvite             `json:"pendingInvites"`
	AvailableStudents []*models.Student                 `json:"availableStudents"`
	Supervisors       []*models.Supervisor              `json:"supervisors"`
	ChangeRequests    []*models.SupervisorChangeRequest `json:"changeRequests,omitempty"`
	Notifications     []*models.Notification            `json:"notifications"`
}
