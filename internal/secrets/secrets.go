// Package secrets stores channel credentials in the operating system
// keyring so they never sit in config files. Environment variables
// always win over the keyring, which keeps CI and containers simple.
package secrets

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const service = "jobsdigest"

var ErrNotFound = errors.New("secret not found")

// Set saves a secret under the given key.
func Set(key, value string) error {
	if err := keyring.Set(service, key, value); err != nil {
		return fmt.Errorf("storing secret %s: %w", key, err)
	}
	return nil
}

// Delete removes a stored secret. Deleting an absent key is not an
// error.
func Delete(key string) error {
	err := keyring.Delete(service, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting secret %s: %w", key, err)
	}
	return nil
}

// Resolve looks a secret up by environment variable first, then the
// keyring. The env var name doubles as the keyring key.
func Resolve(key string) (string, error) {
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	v, err := keyring.Get(service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("reading secret %s: %w", key, err)
	}
	return v, nil
}
