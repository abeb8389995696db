// Package repositories contains the SQL data access layer.
package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	UserRepository          *UserRepository
	StudentRepository       *StudentRepository
	SupervisorRepository    *SupervisorRepository
	CoordinatorRepository   *CoordinatorRepository
	GroupRepository         *GroupRepository
	InviteRepository        *InviteRepository
	RequestRepository       *SupervisorRequestRepository
	ChangeRequestRepository *ChangeRequestRepository
	PanelRepository         *PanelRepository
	MarksRepository         *MarksRepository
	OTPRepository           *OTPRepository
	NotificationRepository  *NotificationRepository
	TokenRepository         *TokenRepository
}

// NewRepositories creates all repositories backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		StudentRepository:       NewStudentRepository(db),
		SupervisorRepository:    NewSupervisorRepository(db),
		CoordinatorRepository:   NewCoordinatorRepository(db),
		GroupRepository:         NewGroupRepository(db),
		InviteRepository:        NewInviteRepository(db),
		RequestRepository:       NewSupervisorRequestRepository(db),
		ChangeRequestRepository: NewChangeRequestRepository(db),
		PanelRepository:         NewPanelRepository(db),
		MarksRepository:         NewMarksRepository(db),
		OTPRepository:           NewOTPRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		TokenRepository:         NewTokenRepository(db),
	}
}
