package models

import (
	"time"
)

// StudentGroup defines the project group model based on the 'student_groups'
// table. A group holds 1 to MaxGroupSize students and at most one supervisor.
type StudentGroup struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"` // generated as <branch><2-digit sequence>
	SupervisorID       *int64    `json:"supervisorId,omitempty" db:"supervisor_id"`
	ProjectTitle       *string   `json:"projectTitle,omitempty" db:"project_title"`
	ProjectDescription *string   `json:"projectDescription,omitempty" db:"project_description"`
	DocumentLink       *string   `json:"documentLink,omitempty" db:"document_link"`
	Branch             string    `json:"branch" db:"branch"`
	Year               string    `json:"year" db:"year"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// GroupInvite defines a directed invitation between two students based on
// the 'group_invites' table
type GroupInvite struct {
	ID         int64         `json:"id" db:"id"`
	SenderID   int64         `json:"senderId" db:"sender_id"`
	ReceiverID int64         `json:"receiverId" db:"receiver_id"`
	Status     RequestStatus `json:"status" db:"status"`
	SentAt     time.Time     `json:"sentAt" db:"sent_at"`
}
