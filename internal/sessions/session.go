package sessions

import "time"

// Session is a persistent refresh session for an authenticated user.
type Session struct {
	RefreshToken string    `json:"refreshToken"`
	Sub          string    `json:"sub"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}
