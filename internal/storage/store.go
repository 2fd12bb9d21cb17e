// File: internal/storage/store.go

// Package storage provides the scoped key/value persistence layer the stores
// write through. Values are opaque strings; JSON encoding happens at the
// boundary via ReadJSON/WriteJSON. Two scopes exist: a session scope that
// lives only as long as the process (the browser-session analogue) and a
// durable scope that survives restarts.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptRecord marks a persisted value that could not be decoded. Callers
// are expected to treat it as "no data" and fall back to seeds, never to
// surface it.
var ErrCorruptRecord = errors.New("storage: corrupt record")

// Store is a uniform string key/value store.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// ReadJSON decodes the JSON value stored under key into dest. It returns
// false with a nil error when the key is absent, and false with an error
// wrapping ErrCorruptRecord when the value cannot be decoded.
func ReadJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading key %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("%w: key %q: %v", ErrCorruptRecord, key, err)
	}
	return true, nil
}

// WriteJSON encodes v as JSON and stores it under key.
func WriteJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding key %q: %w", key, err)
	}
	if err := s.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}
