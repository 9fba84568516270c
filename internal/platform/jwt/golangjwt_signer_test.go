package jwt_test

import (
	"testing"
	"time"

	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/ferdiebergado/accountkit/internal/platform/jwt"
)

func newSigner(key, issuer, audience string) jwt.Signer {
	cfg := &config.JWT{
		JTILength: 8,
		Issuer:    issuer,
		Audience:  audience,
	}
	return jwt.NewGolangJWTSigner(cfg, key, security.HexRandomizer)
}

func TestGolangJWTSigner_SignAndVerify(t *testing.T) {
	t.Parallel()

	const userID = "5d1b9c0e-1b6f-4a2e-9d33-0c6c9a3d7f10"

	signer := newSigner("123", "accountkit", "accountkit")
	token, err := signer.Sign(userID, 5*time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	if token == "" {
		t.Fatal("token is empty")
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("signer.Verify(token) = %v", err)
	}

	if got, want := claims.UserID, userID; got != want {
		t.Errorf("claims.UserID = %q, want: %q", got, want)
	}

	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("claims.ExpiresAt = %v, want a time in the future", claims.ExpiresAt)
	}
}

func TestGolangJWTSigner_VerifyRejects(t *testing.T) {
	t.Parallel()

	signer := newSigner("123", "accountkit", "accountkit")

	valid, err := signer.Sign("user", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	expired, err := signer.Sign("user", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	otherKey, err := newSigner("456", "accountkit", "accountkit").Sign("user", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	otherAudience, err := newSigner("123", "accountkit", "billing").Sign("user", time.Minute)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"Expired", expired},
		{"Different key", otherKey},
		{"Different audience", otherAudience},
		{"Tampered", valid + "x"},
		{"Garbage", "not-a-jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if _, err := signer.Verify(tc.token); err == nil {
				t.Errorf("signer.Verify(%q) returned nil error", tc.name)
			}
		})
	}
}
