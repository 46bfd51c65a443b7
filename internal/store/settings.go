package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// Settings keys live in their own namespace next to the entity records.
const (
	settingsPrefix    = "settings:"
	jwtSecretKey      = settingsPrefix + "jwt_secret"
	operatorSecretKey = settingsPrefix + "operator_password"
)

type setting struct {
	Value string `json:"value"`
}

// readSetting returns the value under key, or "" if it is not set. A failed
// read is an error so callers never mistake it for a missing setting.
func readSetting(ctx context.Context, r *Records, key string) (string, error) {
	data, err := r.Backend().Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	var s setting
	if err := json.Unmarshal(data, &s); err != nil {
		return "", fmt.Errorf("decoding %s: %w", key, err)
	}
	return s.Value, nil
}

// GetJWTSecret retrieves the JWT secret, generating and storing one on first use.
func GetJWTSecret(ctx context.Context, r *Records) (string, error) {
	value, err := readSetting(ctx, r, jwtSecretKey)
	if err != nil {
		return "", err
	}
	if value != "" {
		return value, nil
	}

	var s setting
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	s.Value = hex.EncodeToString(buf)
	if !r.Set(ctx, jwtSecretKey, s) {
		return "", fmt.Errorf("storing jwt secret")
	}
	return s.Value, nil
}

// GetOperatorPasswordHash returns the stored operator password hash, or "" if none is set.
func GetOperatorPasswordHash(ctx context.Context, r *Records) (string, error) {
	return readSetting(ctx, r, operatorSecretKey)
}

// SetOperatorPasswordHash stores the operator password hash.
func SetOperatorPasswordHash(ctx context.Context, r *Records, hash string) error {
	if !r.Set(ctx, operatorSecretKey, setting{Value: hash}) {
		return fmt.Errorf("storing operator password")
	}
	return nil
}
