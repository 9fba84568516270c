package jwt

import "time"

// Claims holds the JWT claims the application relies on after verification.
type Claims struct {
	UserID    string
	ExpiresAt time.Time
}

// Signer defines methods for signing and verifying JWT tokens.
type Signer interface {
	Sign(subject string, duration time.Duration) (token string, err error)
	Verify(tokenString string) (*Claims, error)
}
