package config

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

const rsaKeyBits = 2048

// loadJWTKeys returns the RS256 keypair from JWT_PRIVATE_KEY and JWT_PUBLIC_KEY
// (base64 encoded PEM). Outside production a missing pair is replaced by a
// generated one, so tokens do not survive a restart.
func (c *Config) loadJWTKeys() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	privateB64, publicB64 := os.Getenv("JWT_PRIVATE_KEY"), os.Getenv("JWT_PUBLIC_KEY")

	if privateB64 == "" || publicB64 == "" {
		if c.IsProduction() {
			return nil, nil, errors.New("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required in production")
		}
		slog.Warn("JWT keys not configured, using an ephemeral RSA keypair")
		return GenerateRSAKeyPair()
	}

	privateBlock, err := decodePEM("JWT_PRIVATE_KEY", privateB64)
	if err != nil {
		return nil, nil, err
	}
	publicBlock, err := decodePEM("JWT_PUBLIC_KEY", publicB64)
	if err != nil {
		return nil, nil, err
	}

	privateKey, err := parsePrivateKey(privateBlock)
	if err != nil {
		return nil, nil, fmt.Errorf("JWT_PRIVATE_KEY: %w", err)
	}
	publicKey, err := parsePublicKey(publicBlock)
	if err != nil {
		return nil, nil, fmt.Errorf("JWT_PUBLIC_KEY: %w", err)
	}

	return privateKey, publicKey, nil
}

// GenerateRSAKeyPair creates a fresh signing keypair.
func GenerateRSAKeyPair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate RSA key pair: %w", err)
	}
	return key, &key.PublicKey, nil
}

func decodePEM(name, encoded string) (*pem.Block, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, fmt.Errorf("%s does not contain a PEM block", name)
	}
	return block, nil
}

// parsePrivateKey accepts PKCS#1 and PKCS#8 encodings.
func parsePrivateKey(block *pem.Block) (*rsa.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("expected an RSA private key, got %T", parsed)
	}
	return key, nil
}

func parsePublicKey(block *pem.Block) (*rsa.PublicKey, error) {
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("expected an RSA public key, got %T", parsed)
	}
	return key, nil
}
