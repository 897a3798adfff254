package dto

import "github.com/yigit/scholarship/internal/app/models"

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	Name     string `json:"name" binding:"omitempty,max=150" example:"Ana Pérez"`
	Email    string `json:"email" binding:"required,email" example:"ana@ucr.ac.cr"`
	Password string `json:"password" binding:"required,min=6" example:"secreto123"`
	Role     string `json:"role" binding:"required" example:"estudiante"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@ucr.ac.cr"`
	Password string `json:"password" binding:"required" example:"secreto123"`
}

// UserResponse is the public projection of a user
type UserResponse struct {
	ID               int64  `json:"id" example:"1"`
	Name             string `json:"name" example:"Ana Pérez"`
	Email            string `json:"email" example:"ana@ucr.ac.cr"`
	Role             string `json:"role" example:"estudiante"`
	TwoFactorEnabled bool   `json:"twofactor_enabled" example:"false"`
}

// LoginResponse carries the issued token and the user
type LoginResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	TokenType string       `json:"token_type" example:"Bearer"`
	ExpiresIn int          `json:"expires_in" example:"604800"`
	User      UserResponse `json:"user"`
}

// NewUserResponse projects a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Name:             u.Name,
		Email:            u.Email,
		Role:             string(u.Role),
		TwoFactorEnabled: u.TwoFactorEnabled,
	}
}

// OTPCodeRequest carries a one-time code
type OTPCodeRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric" example:"482913"`
}

// OTPSentResponse tells the client how long the code stays valid
type OTPSentResponse struct {
	ExpiresIn int `json:"expires_in" example:"300"`
}
