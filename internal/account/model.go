// File: internal/account/model.go
package account

import (
	"time"
)

// Badge is an earned qualifier shown next to an account's name.
type Badge string

const (
	BadgeVerifiedReviewer Badge = "Verified Reviewer"
	BadgeTopContributor   Badge = "Top Contributor"
	BadgeNewUser          Badge = "New User"
)

// Account is the identity record. The JSON field names match the original
// client's storage layout.
type Account struct {
	ID                       string     `json:"id"`
	Name                     string     `json:"name"`
	Email                    string     `json:"email"`
	Picture                  *string    `json:"picture,omitempty"`
	AvatarURL                *string    `json:"avatarUrl,omitempty"`
	Verified                 bool       `json:"verified"`
	VerificationToken        *string    `json:"verificationToken,omitempty"`
	VerificationTokenExpires *time.Time `json:"verificationTokenExpires,omitempty"`
	ReviewCount              int        `json:"reviewCount"`
	Badges                   []Badge    `json:"badges,omitempty"`
}

// DirectoryEntry is an account as stored in the registered-accounts
// directory. Email/password accounts carry a bcrypt hash; externally
// authenticated accounts have none.
type DirectoryEntry struct {
	Account
	PasswordHash string `json:"passwordHash,omitempty"`
}

// ExternalProfile is the normalized shape the store requires from any
// identity provider.
type ExternalProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// ProfileUpdate holds the fields a profile edit may change. Nil means
// "leave unchanged".
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	Picture   *string `json:"picture,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}

// --- DTOs for API requests ---

// RegisterRequest defines the payload for email/password registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"` // bcrypt max is 72 bytes
}

// LoginRequest defines the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SocialLoginRequest carries a normalized external identity profile.
type SocialLoginRequest struct {
	ID      string `json:"id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Picture string `json:"picture,omitempty" binding:"omitempty,url"`
}

// VerifyEmailRequest carries the token from the verification link.
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// clone returns a deep copy so callers can't mutate store-owned state.
func (a *Account) clone() *Account {
	if a == nil {
		return nil
	}
	cp := *a
	if a.Picture != nil {
		v := *a.Picture
		cp.Picture = &v
	}
	if a.AvatarURL != nil {
		v := *a.AvatarURL
		cp.AvatarURL = &v
	}
	if a.VerificationToken != nil {
		v := *a.VerificationToken
		cp.VerificationToken = &v
	}
	if a.VerificationTokenExpires != nil {
		v := *a.VerificationTokenExpires
		cp.VerificationTokenExpires = &v
	}
	if a.Badges != nil {
		cp.Badges = append([]Badge(nil), a.Badges...)
	}
	return &cp
}
