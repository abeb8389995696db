// Package routes wires controllers to URL paths.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/projecthub/internal/app/controllers"
	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/middleware"
)

// Controllers bundles every controller the router needs
type Controllers struct {
	Auth         *controllers.AuthController
	Group        *controllers.GroupController
	Supervisor   *controllers.SupervisorController
	Panel        *controllers.PanelController
	Notification *controllers.NotificationController
	Report       *controllers.ReportController
	Dashboard    *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	{
		auth.POST("/send-otp", c.Auth.SendOTP)
		auth.POST("/register/student", c.Auth.RegisterStudent)
		auth.POST("/register/supervisor", c.Auth.RegisterSupervisor)
		auth.POST("/register/coordinator", c.Auth.RegisterCoordinator)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.POST("/auth/logout", c.Auth.Logout)

	// Student routes
	student := authenticated.Group("")
	student.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		groups := student.Group("/groups")
		{
			groups.POST("/invites", c.Group.SendInvite)
			groups.POST("/invites/respond", c.Group.RespondInvite)
			groups.POST("/leave", c.Group.LeaveGroup)
			groups.GET("/me", c.Group.GetMyGroup)
			groups.PUT("/project", c.Group.UpdateProject)
			groups.PUT("/document-link", c.Group.UpdateDocumentLink)
		}

		student.POST("/supervisor-requests", c.Supervisor.RequestSupervisor)
		student.POST("/supervisor-requests/change", c.Supervisor.RequestChange)
		student.GET("/marks/me", c.Panel.GetMyMarks)
		student.GET("/dashboard/student", c.Dashboard.Student)
	}

	// Supervisor routes
	supervisor := authenticated.Group("")
	supervisor.Use(authMiddleware.RoleRequired(models.RoleSupervisor))
	{
		supervisor.POST("/supervisor-requests/respond", c.Supervisor.RespondRequest)
		supervisor.POST("/marks", c.Panel.AssignMarks)
		supervisor.GET("/dashboard/supervisor", c.Dashboard.Supervisor)
	}

	// Coordinator routes
	coordinator := authenticated.Group("")
	coordinator.Use(authMiddleware.RoleRequired(models.RoleCoordinator))
	{
		coordinator.POST("/panels", c.Panel.CreatePanel)
		coordinator.POST("/supervisor-requests/change/respond", c.Supervisor.ResolveChange)
		coordinator.POST("/notifications", c.Notification.Send)
		coordinator.GET("/reports/groups", c.Report.GroupReport)
		coordinator.GET("/dashboard/coordinator", c.Dashboard.Coordinator)
	}

	// Open to any authenticated role
	authenticated.GET("/panels/:groupId", c.Panel.GetPanel)
	authenticated.GET("/notifications", c.Notification.Feed)
}
