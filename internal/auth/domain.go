package auth

import "time"

// StaffUser is the identity payload the hotel backend returns on login.
type StaffUser struct {
	ID       int64  `json:"personel_id"`
	Username string `json:"kullanici_adi"`
	Name     string `json:"ad_soyad"`
	JobTitle string `json:"gorev"`
}

// BreakGlassAccount is a locally stored emergency admin credential.
type BreakGlassAccount struct {
	ID           int64
	Username     string
	Name         string
	PasswordHash string
}

// LoginResult bundles the backend token with the normalised identity.
type LoginResult struct {
	Token     string
	User      StaffUser
	Role      string
	ExpiresAt time.Time
}
