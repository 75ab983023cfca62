package dto

import (
	userModel "eventos_backend/internals/features/users/auth/model"
)

// 🔹 Login
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // username o email
	Password   string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"` // segundos
	User        UserResponse `json:"user"`
}

// 🔹 Perfil propio (campos opcionales estilo PATCH)
type UpdateProfileRequest struct {
	UserEmail    *string `json:"user_email" validate:"omitempty,email,max=254"`
	UserFullName *string `json:"user_full_name" validate:"omitempty,max=100"`
	UserAddress  *string `json:"user_address"`
	UserGender   *string `json:"user_gender" validate:"omitempty,oneof=M F O"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// 🔹 Response (nunca incluye el hash)
type UserResponse struct {
	UserID       string `json:"user_id"`
	UserUsername string `json:"user_username"`
	UserEmail    string `json:"user_email"`
	UserFullName string `json:"user_full_name"`
	UserAddress  string `json:"user_address,omitempty"`
	UserGender   string `json:"user_gender,omitempty"`
	UserRole     string `json:"user_role"`
	UserIsActive bool   `json:"user_is_active"`
	UserAgencyID *int   `json:"user_agency_id,omitempty"`
}

func ToUserResponse(u *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:       u.UserID.String(),
		UserUsername: u.UserUsername,
		UserEmail:    u.UserEmail,
		UserFullName: u.UserFullName,
		UserAddress:  u.UserAddress,
		UserGender:   u.UserGender,
		UserRole:     u.UserRole,
		UserIsActive: u.UserIsActive,
		UserAgencyID: u.UserAgencyID,
	}
}
