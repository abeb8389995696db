package services

import (
	"github.com/arjun/projecthub/internal/app/repositories"
	"github.com/arjun/projecthub/internal/db"
	"github.com/arjun/projecthub/internal/pkg/auth"
	"github.com/arjun/projecthub/internal/pkg/email"
)

// Services bundles every service for dependency injection
type Services struct {
	OTPService          *OTPService
	AuthService         *AuthService
	GroupService        *GroupService
	SupervisorService   *SupervisorService
	PanelService        *PanelService
	MarksService        *MarksService
	NotificationService *NotificationService
	ReportService       *ReportService
	DashboardService    *DashboardService
}

// NewServices creates all services wired to the given repositories
func NewServices(
	repos *repositories.Repositories,
	txRunner db.TxRunner,
	jwtService *auth.JWTService,
	mailer email.Service,
) *Services {
	otpService := NewOTPService(repos.OTPRepository, mailer)

	return &Services{
		OTPService: otpService,
		AuthService: NewAuthService(
			txRunner,
			repos.UserRepository,
			repos.StudentRepository,
			repos.SupervisorRepository,
			repos.CoordinatorRepository,
			repos.TokenRepository,
			otpService,
			jwtService,
		),
		GroupService: NewGroupService(
			txRunner,
			repos.StudentRepository,
			repos.GroupRepository,
			repos.InviteRepository,
			repos.RequestRepository,
			repos.ChangeRequestRepository,
		),
		SupervisorService: NewSupervisorService(
			txRunner,
			repos.StudentRepository,
			repos.SupervisorRepository,
			repos.CoordinatorRepository,
			repos.GroupRepository,
			repos.RequestRepository,
			repos.ChangeRequestRepository,
		),
		PanelService: NewPanelService(
			txRunner,
			repos.CoordinatorRepository,
			repos.SupervisorRepository,
			repos.StudentRepository,
			repos.GroupRepository,
			repos.PanelRepository,
		),
		MarksService: NewMarksService(
			repos.SupervisorRepository,
			repos.StudentRepository,
			repos.GroupRepository,
			repos.MarksRepository,
		),
		NotificationService: NewNotificationService(
			repos.StudentRepository,
			repos.CoordinatorRepository,
			repos.NotificationRepository,
		),
		ReportService: NewReportService(
			repos.CoordinatorRepository,
			repos.GroupRepository,
		),
		DashboardService: NewDashboardService(
			repos.StudentRepository,
			repos.SupervisorRepository,
			repos.CoordinatorRepository,
			repos.GroupRepository,
			repos.InviteRepository,
			repos.RequestRepository,
			repos.ChangeRequestRepository,
			repos.NotificationRepository,
		),
	}
}
