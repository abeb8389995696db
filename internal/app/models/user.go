package models

import (
	"time"
)

// User defines the account model based on the 'users' table. Exactly one
// profile of the matching role variant exists per user.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"` // bcrypt hash, excluded from JSON
	Role      RoleType  `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Student defines the student profile model based on the 'students' table
type Student struct {
	ID         int64  `json:"id" db:"id"`
	UserID     int64  `json:"userId" db:"user_id"`
	Name       string `json:"name" db:"name"`
	RollNumber string `json:"rollNumber" db:"roll_number"`
	Year       string `json:"year" db:"year"`
	School     string `json:"school" db:"school"`
	Branch     string `json:"branch" db:"branch"`
	GroupID    *int64 `json:"groupId,omitempty" db:"group_id"` // nil while unaffiliated
}

// Supervisor defines the supervisor profile model based on the 'supervisors' table
type Supervisor struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Domain string `json:"domain" db:"domain"`
	School string `json:"school" db:"school"`
}

// Coordinator defines the school coordinator (FIC) profile model based on
// the 'coordinators' table
type Coordinator struct {
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
	Name   string `json:"name" db:"name"`
	School string `json:"school" db:"school"`
}
