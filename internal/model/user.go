package model

import (
	"time"

	"github.com/google/uuid"
)

// SeedAdminEmail identifies the bootstrap administrator that can never be deleted.
const SeedAdminEmail = "admin@example.com"

// DeletedUserName is displayed for orders whose user no longer exists.
const DeletedUserName = "DELETED USER"

// User represents a storefront account.
type User struct {
	ID           uuid.UUID `json:"_id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ResetToken   *string   `json:"-" db:"reset_token"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin"`
	IsSupplier   bool      `json:"isSupplier" db:"is_supplier"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsSeedAdmin reports whether u is the protected bootstrap administrator.
func (u *User) IsSeedAdmin() bool {
	return u.Email == SeedAdminEmail
}

// SignInRequest is the payload for POST /api/users/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the payload for POST /api/users/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdateRequest is the payload for PUT /api/users/profile.
type ProfileUpdateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest is the admin payload for PUT /api/users/{id}.
type UserUpdateRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
	IsSupplier bool   `json:"isSupplier"`
}

// ForgetPasswordRequest is the payload for POST /api/users/forget-password.
type ForgetPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the payload for POST /api/users/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// AuthResponse is returned by sign-in, sign-up and profile updates.
type AuthResponse struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	IsAdmin    bool      `json:"isAdmin"`
	IsSupplier bool      `json:"isSupplier"`
	Token      string    `json:"token"`
}

// UserUpdateResponse is returned by the admin user update.
type UserUpdateResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// SeedResult is returned by the sample data loader.
type SeedResult struct {
	CreatedProducts []Product `json:"createdProducts"`
	CreatedUsers    []User    `json:"createdUsers"`
}
