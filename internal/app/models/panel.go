package models

import (
	"time"
)

// PanelSize is the fixed number of supervisors on an evaluation panel.
const PanelSize = 3

// Panel defines an evaluation panel based on the 'panels' table. One panel
// exists per group.
type Panel struct {
	ID        int64     `json:"id" db:"id"`
	GroupID   int64     `json:"groupId" db:"group_id"`
	CreatedBy int64     `json:"createdBy" db:"created_by"` // coordinator profile ID
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PanelMember links a supervisor to a panel based on the 'panel_members' table
type PanelMember struct {
	ID           int64 `json:"id" db:"id"`
	PanelID      int64 `json:"panelId" db:"panel_id"`
	SupervisorID int64 `json:"supervisorId" db:"supervisor_id"`
}

// Marks holds the component scores a supervisor assigned to one student,
// based on the 'marks' table. One row exists per (student, supervisor) pair;
// re-submission overwrites in place and Total is always recomputed.
type Marks struct {
	ID            int64     `json:"id" db:"id"`
	StudentID     int64     `json:"studentId" db:"student_id"`
	Presentation  float64   `json:"presentation" db:"presentation"`
	Documents     float64   `json:"documents" db:"documents"`
	Collaboration float64   `json:"collaboration" db:"collaboration"`
	Total         float64   `json:"total" db:"total"`
	GivenBy       int64     `json:"givenBy" db:"given_by"` // supervisor profile ID
	GivenAt       time.Time `json:"givenAt" db:"given_at"`
}
