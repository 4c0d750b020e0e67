package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleMedico    Role = "medico"
	RoleEnfermero Role = "enfermero"
	RoleAuxiliar  Role = "auxiliar"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMedico, RoleEnfermero, RoleAuxiliar:
		return true
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`

	Username             string `gorm:"column:username;type:varchar(100);uniqueIndex;not null" json:"username"`
	Email                string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash         string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Role                 Role   `gorm:"column:role;type:varchar(30);not null;index" json:"role"`
	IdentificationNumber string `gorm:"column:numero_identificacion;type:varchar(50)" json:"numero_identificacion"`

	IsActive    bool       `gorm:"column:is_active;default:true;index" json:"is_active"`
	LastLoginAt *time.Time `gorm:"column:last_login_at" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Principal is the authenticated actor attributed to a request. Every
// mutating operation records it as the responsible user.
type Principal struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"` // Always "Bearer"
}
