package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// EdDSASigner signs and verifies session tokens with a single Ed25519
// keypair. The service is its own verifier, so no key distribution or kid
// lookup is needed.
type EdDSASigner struct {
	key    ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
}

// NewEdDSASigner wraps an Ed25519 private key for session signing.
func NewEdDSASigner(key ed25519.PrivateKey, issuer string) (*EdDSASigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 private key size")
	}
	pub, ok := key.Public().(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 private key")
	}
	return &EdDSASigner{key: key, pub: pub, issuer: issuer}, nil
}

func (s *EdDSASigner) Alg() string    { return jwt.SigningMethodEdDSA.Alg() }
func (s *EdDSASigner) Issuer() string { return s.issuer }

// Sign takes claims and turns them into a signed JWT string.
func (s *EdDSASigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	return t.SignedString(s.key)
}

// Verify validates the JWT string and returns its parsed Claims.
func (s *EdDSASigner) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(s.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
