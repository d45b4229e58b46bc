// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrInvalidSessionID    = errors.New("invalid session id")
)

// NewSessionID returns a random v4 UUID.
func NewSessionID() string {
	return uuid.NewString()
}

// ParseSessionID normalises id and rejects anything that is not a UUID.
func ParseSessionID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidSessionID
	}
	return u.String(), nil
}

// GenerateSessionToken derives the bearer token for a session.
// Deterministic, so tokens never need to be stored.
func GenerateSessionToken(sessionID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("session:"))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateSessionToken checks token against the session ID.
func ValidateSessionToken(sessionID, token, salt string) error {
	expected := GenerateSessionToken(sessionID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidSessionToken
	}
	return nil
}

// HashClient creates a one-way hash of a client address for privacy.
func HashClient(addr, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte("client:"))
	h.Write([]byte(addr))
	sum := h.Sum(nil)
	// 64 bits are enough to group repeat visitors
	return hex.EncodeToString(sum[:8])
}
