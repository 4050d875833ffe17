package entity

import "time"

// Role is the closed set of account roles. A distinct type keeps unknown
// role strings out of authorization decisions.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the declared values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// DbUser represents a persisted user account.
type DbUser struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Email         string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Name          string    `gorm:"column:name;type:varchar(50);not null" json:"name"`
	ActivationKey string    `gorm:"column:activation_key;type:varchar(64);uniqueIndex" json:"-"`
	Active        bool      `gorm:"column:active;not null;default:true" json:"active"`
	Role          Role      `gorm:"column:role;type:varchar(50);index;not null" json:"role"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// UserSummary is the client-facing view of an account. The password hash
// and activation key are never part of it.
type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MakeUserSummary converts a persisted user into its client-facing view.
func MakeUserSummary(user *DbUser) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// RegisterRequest is the registration payload. The password minimum follows
// the route-level rule (9 characters).
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=9,max=128"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ProfileUpdateRequest is the self-service profile payload. Absent fields
// are left untouched.
type ProfileUpdateRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=9,max=128"`
}

// TokenResponse is returned after successful registration or login.
type TokenResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserSummary `json:"user"`
}

// MessageResponse is a bare acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
