package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/accountkit/internal/config"
	"github.com/ferdiebergado/accountkit/internal/pkg/security"
	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSubject = errors.New("jwt: token has no subject")

// golangJWTSigner implements the Signer interface using the golang-jwt library.
type golangJWTSigner struct {
	method     jwt.SigningMethod
	key        []byte
	jtiLen     uint32
	issuer     string
	audience   string
	randomizer security.Randomizer
}

var _ Signer = (*golangJWTSigner)(nil)

// NewGolangJWTSigner creates an HS256 signer with the provided JWT config and signing key.
func NewGolangJWTSigner(cfg *config.JWT, key string, randomizer security.Randomizer) Signer {
	return &golangJWTSigner{
		method:     jwt.SigningMethodHS256,
		key:        []byte(key),
		jtiLen:     cfg.JTILength,
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		randomizer: randomizer,
	}
}

// Sign generates a signed JWT token for subject that expires after duration.
func (s *golangJWTSigner) Sign(subject string, duration time.Duration) (string, error) {
	jti, err := s.randomizer.Randomize(s.jtiLen)
	if err != nil {
		return "", fmt.Errorf("generate jti with length %d: %w", s.jtiLen, err)
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		Subject:   subject,
		ID:        jti,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates tokenString and returns its Claims if valid.
func (s *golangJWTSigner) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse with claims: %w", err)
	}

	registered, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, fmt.Errorf("unknown claims type: %T", token.Claims)
	}

	if registered.Subject == "" {
		return nil, ErrMissingSubject
	}

	return &Claims{
		UserID:    registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
