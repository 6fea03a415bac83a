package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// LoadOrGenerateKey returns the Ed25519 session-signing key. When path is
// empty the key is ephemeral and sessions do not survive a restart. When a
// path is given the key is read from it, or generated and written there on
// first start (PKCS8 PEM, 0600).
func LoadOrGenerateKey(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key: %w", err)
		}
		return key, nil
	}

	pemBytes, err := os.ReadFile(path)
	switch {
	case err == nil:
		return parsePrivateKeyPEM(pemBytes)
	case os.IsNotExist(err):
		_, key, genErr := ed25519.GenerateKey(rand.Reader)
		if genErr != nil {
			return nil, fmt.Errorf("jwtx: generate key: %w", genErr)
		}
		if writeErr := writePrivateKeyPEM(path, key); writeErr != nil {
			return nil, writeErr
		}
		return key, nil
	default:
		return nil, fmt.Errorf("jwtx: read key file: %w", err)
	}
}

func parsePrivateKeyPEM(pemBytes []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not Ed25519 private key")
	}
	return key, nil
}

func writePrivateKeyPEM(path string, key ed25519.PrivateKey) error {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if err := os.WriteFile(path, pemBytes, 0o600); err != nil {
		return fmt.Errorf("jwtx: write key file: %w", err)
	}
	return nil
}
