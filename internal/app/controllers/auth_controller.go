// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/projecthub/internal/app/models"
	"github.com/arjun/projecthub/internal/app/models/dto"
	"github.com/arjun/projecthub/internal/app/services"
	"github.com/arjun/projecthub/internal/middleware"
)

// AuthController handles registration, login and session endpoints
type AuthController struct {
	authService services.IAuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.IAuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// SendOTP mails a verification code for registration or password reset
func (c *AuthController) SendOTP(ctx *gin.Context) {
	var req dto.SendOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	purpose := models.OTPPurposeRegistration
	if req.Purpose != "" {
		purpose = models.OTPPurpose(req.Purpose)
	}

	if err := c.authService.SendOTP(ctx, req.Email, purpose); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Verification code sent", nil))
}

// RegisterStudent creates a student account
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.RegisterStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", resp.UserID).Msg("Student registered")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Registration successful", resp))
}

// RegisterSupervisor creates a supervisor account
func (c *AuthController) RegisterSupervisor(ctx *gin.Context) {
	var req dto.RegisterSupervisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.RegisterSupervisor(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", resp.UserID).Msg("Supervisor registered")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Registration successful", resp))
}

// RegisterCoordinator creates a coordinator account
func (c *AuthController) RegisterCoordinator(ctx *gin.Context) {
	var req dto.RegisterCoordinatorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.authService.RegisterCoordinator(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("userId", resp.UserID).Msg("Coordinator registered")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse("Registration successful", resp))
}

// Login exchanges credentials for a token pair
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Login successful", tokens))
}

// Refresh rotates a refresh token for a new pair
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Token refreshed", tokens))
}

// ForgotPassword starts the password reset flow. The response does not
// reveal whether the address is registered.
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.ForgotPassword(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("If the address is registered, a reset code has been sent", nil))
}

// ResetPassword finishes the password reset flow
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.ResetPassword(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Password reset successful", nil))
}

// Logout revokes the presented refresh token
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse("Logged out", nil))
}
