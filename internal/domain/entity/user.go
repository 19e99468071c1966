package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                   primitive.ObjectID `json:"_id"`
	Username             string             `json:"username"`
	Email                string             `json:"email"`
	Password             string             `json:"-"` // bcrypt hash, never serialized
	Role                 string             `json:"role"`
	ResetPasswordToken   string             `json:"-"`
	ResetPasswordExpires *time.Time         `json:"-"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

// SanitizedUser is the shape returned to clients after signin and profile lookups.
type SanitizedUser struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) Sanitize() *SanitizedUser {
	return &SanitizedUser{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}
