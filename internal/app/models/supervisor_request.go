package models

import (
	"time"
)

// SupervisorRequest defines a group's request to be supervised, based on the
// 'supervisor_requests' table. At most MaxSupervisorRequests exist per group
// and accepting one rejects every other pending sibling.
type SupervisorRequest struct {
	ID           int64         `json:"id" db:"id"`
	GroupID      int64         `json:"groupId" db:"group_id"`
	SupervisorID int64         `json:"supervisorId" db:"supervisor_id"`
	Status       RequestStatus `json:"status" db:"status"`
	SentAt       time.Time     `json:"sentAt" db:"sent_at"`
}

// SupervisorChangeRequest defines a group's request to swap supervisors,
// based on the 'supervisor_change_requests' table. Resolution is
// coordinator-scoped; at most one pending instance exists per group.
type SupervisorChangeRequest struct {
	ID                  int64         `json:"id" db:"id"`
	GroupID             int64         `json:"groupId" db:"group_id"`
	CurrentSupervisorID int64         `json:"currentSupervisorId" db:"current_supervisor_id"`
	NewSupervisorID     int64         `json:"newSupervisorId" db:"new_supervisor_id"`
	Status              RequestStatus `json:"status" db:"status"`
	Reason              string        `json:"reason" db:"reason"`
	CreatedAt           time.Time     `json:"createdAt" db:"created_at"`
	ProcessedAt         *time.Time    `json:"processedAt,omitempty" db:"processed_at"`
}
