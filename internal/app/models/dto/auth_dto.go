package dto

// SendOTPRequest asks for a one-time code to be mailed
type SendOTPRequest struct {
	Email   string `json:"email" binding:"required,email" example:"student@school.edu"`
	Purpose string `json:"purpose" binding:"omitempty,oneof=registration password_reset" example:"registration"`
}

// RegisterStudentRequest carries a student registration form
type RegisterStudentRequest struct {
	Name       string `json:"name" binding:"required,min=2,max=100" example:"Asha Verma"`
	Email      string `json:"email" binding:"required,email" example:"asha@school.edu"`
	RollNumber string `json:"rollNumber" binding:"required" example:"21BCS045"`
	Year       string `json:"year" binding:"required" example:"Third"`
	School     string `json:"school" binding:"required" example:"School of Engineering"`
	Branch     string `json:"branch" binding:"required" example:"CS"`
	Password   string `json:"password" binding:"required,min=8"`
	OTP        string `json:"otp" binding:"required,len=6" example:"482913"`
}

// RegisterSupervisorRequest carries a supervisor registration form
type RegisterSupervisorRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100" example:"Dr. R. Iyer"`
	Email    string `json:"email" binding:"required,email"`
	Domain   string `json:"domain" binding:"required" example:"Machine Learning"`
	School   string `json:"school" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	OTP      string `json:"otp" binding:"required,len=6"`
}

// RegisterCoordinatorRequest carries a coordinator (FIC) registration form
type RegisterCoordinatorRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	School   string `json:"school" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	OTP      string `json:"otp" binding:"required,len=6"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token to exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest finishes the password reset flow
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// TokenResponse returns a token pair after login/refresh
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType" example:"Bearer"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	Role         string `json:"role" example:"STUDENT"`
}

// RegisterResponse returns the created account identity
type RegisterResponse struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
