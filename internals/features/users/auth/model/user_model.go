package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`
	UserUsername     string    `gorm:"column:user_username;type:varchar(150);not null;unique"        json:"user_username"`
	UserEmail        string    `gorm:"column:user_email;type:varchar(254);not null;unique"           json:"user_email"`
	UserPasswordHash string    `gorm:"column:user_password_hash;type:varchar(255);not null"          json:"-"`
	UserFullName     string    `gorm:"column:user_full_name;type:varchar(100);not null"              json:"user_full_name"`
	UserAddress      string    `gorm:"column:user_address;type:text"                                 json:"user_address"`
	UserGender       string    `gorm:"column:user_gender;type:char(1);default:'O'"                   json:"user_gender"`
	UserRole         string    `gorm:"column:user_role;type:varchar(10);not null;default:'captura'"  json:"user_role"`
	UserIsActive     bool      `gorm:"column:user_is_active;not null;default:true"                   json:"user_is_active"`
	UserAgencyID     *int      `gorm:"column:user_agency_id;index:idx_users_agency_id"               json:"user_agency_id,omitempty"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;type:timestamptz;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;type:timestamptz;autoUpdateTime" json:"user_updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) IsAdminUser() bool {
	return u.UserRole == "admin"
}

func (u *UserModel) IsCapturaUser() bool {
	return u.UserRole == "captura"
}
