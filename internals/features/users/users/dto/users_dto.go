package dto

import (
	authDTO "eventos_backend/internals/features/users/auth/dto"
)

// 🔹 Alta de usuario de captura (solo admin)
type CreateUserRequest struct {
	UserUsername string `json:"user_username" validate:"required,min=3,max=150"`
	UserEmail    string `json:"user_email" validate:"required,email,max=254"`
	UserPassword string `json:"user_password" validate:"required,min=8,max=72"`
	UserFullName string `json:"user_full_name" validate:"required,max=100"`
	UserAddress  string `json:"user_address"`
	UserGender   string `json:"user_gender" validate:"omitempty,oneof=M F O"`
	UserAgencyID *int   `json:"user_agency_id" validate:"required"`
}

// 🔹 Edición (campos opcionales estilo PATCH)
type UpdateUserRequest struct {
	UserUsername *string `json:"user_username" validate:"omitempty,min=3,max=150"`
	UserEmail    *string `json:"user_email" validate:"omitempty,email,max=254"`
	UserFullName *string `json:"user_full_name" validate:"omitempty,max=100"`
	UserAddress  *string `json:"user_address"`
	UserGender   *string `json:"user_gender" validate:"omitempty,oneof=M F O"`
	UserAgencyID *int    `json:"user_agency_id"`
	UserPassword *string `json:"user_password" validate:"omitempty,min=8,max=72"`
}

// 🔹 Filtros de listado
type UserFilterQuery struct {
	Search   string `query:"busqueda"` // username, nombre o email
	AgencyID int    `query:"dependencia"`
	Active   string `query:"activo"` // "true" / "false" / ""
}

// El response se comparte con el feature de auth.
type UserResponse = authDTO.UserResponse
