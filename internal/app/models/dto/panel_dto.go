package dto

// CreatePanelRequest creates an evaluation panel for a group
type CreatePanelRequest struct {
	GroupID       int64   `json:"groupId" binding:"required"`
	SupervisorIDs []int64 `json:"supervisorIds" binding:"required,len=3"`
}

// AssignMarksRequest submits component scores for one student
type AssignMarksRequest struct {
	StudentID     int64   `json:"studentId" binding:"required"`
	Presentation  float64 `json:"presentation" binding:"min=0"`
	Documents     float64 `json:"documents" binding:"min=0"`
	Collaboration float64 `json:"collaboration" binding:"min=0"`
}

// SendNotificationRequest broadcasts a message to a target audience
type SendNotificationRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Message      string `json:"message" binding:"required"`
	TargetType   string `json:"targetType" binding:"required,oneof=all students supervisors specific_branch"`
	TargetBranch string `json:"targetBranch" binding:"omitempty,max=50"`
}
