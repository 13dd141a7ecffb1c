package entity

import "time"

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RolePhotographer UserRole = "photographer"
	RoleClient       UserRole = "client"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RolePhotographer, RoleClient:
		return true
	}
	return false
}

// CanUpload reports whether the role may add photos and videos.
func (r UserRole) CanUpload() bool {
	return r == RoleAdmin || r == RolePhotographer
}

type User struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	AvatarURL   string     `json:"avatar_url"`
	Bio         string     `json:"bio"`
	Role        UserRole   `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UserFilter struct {
	Role   UserRole
	Search string
}
