package models

import (
	"time"
)

// Notification defines a broadcast message based on the 'notifications'
// table. Delivery is fire-and-forget; readers filter by role and branch.
type Notification struct {
	ID           int64              `json:"id" db:"id"`
	Title        string             `json:"title" db:"title"`
	Message      string             `json:"message" db:"message"`
	TargetType   NotificationTarget `json:"targetType" db:"target_type"`
	TargetBranch *string            `json:"targetBranch,omitempty" db:"target_branch"` // set iff TargetType is specific_branch
	CreatedBy    int64              `json:"createdBy" db:"created_by"` // coordinator profile ID
	CreatedAt    time.Time          `json:"createdAt" db:"created_at"`
}
