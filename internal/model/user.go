package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole is a flat role enum. There is no privilege matrix: every
// permission check is a role comparison.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleManager UserRole = "MANAGER"
	RoleStaff   UserRole = "STAFF"
)

// ValidRole reports whether s is a known role code.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User represents an authenticated user in the system
type User struct {
	BaseModel
	Email    string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string   `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Name     string   `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'STAFF'" json:"role" validate:"required,oneof=ADMIN MANAGER STAFF"`
	IsActive bool     `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Actor converts the user into the attribution value carried through services.
func (u *User) Actor() *ActingUser {
	return &ActingUser{ID: u.ID, Email: u.Email, Name: u.Name}
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     UserRole  `json:"role"`
	IsActive bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
