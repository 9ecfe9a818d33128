// Package auth provides read-only access to the player's bearer credential.
//
// The credential is owned by whatever logged the player in; this package
// never writes it.
package auth

import (
	"errors"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSource yields the current bearer credential, or "" when absent.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed credential.
type StaticToken string

func (s StaticToken) Token() string {
	return strings.TrimSpace(string(s))
}

// FileToken reads the credential from a file on every call, so a login
// performed by another process is picked up without a restart.
type FileToken struct {
	Path string
}

func (f FileToken) Token() string {
	if f.Path == "" {
		return ""
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// NewTokenSource prefers an inline token over a token file.
func NewTokenSource(token, tokenFile string) TokenSource {
	if strings.TrimSpace(token) != "" {
		return StaticToken(token)
	}
	return FileToken{Path: tokenFile}
}

// Subject returns the "sub" claim of a JWT credential without verifying it.
// The signature is the server's business; the client only needs a stable
// per-player name for its local storage key.
func Subject(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty token")
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
