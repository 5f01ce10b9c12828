package crypto

import (
	"errors"
	"fmt"
	"os"
)

type envKeyring struct{}

// GetKey retrieves the encryption key from the BOUTIQUEBILL_STORE_KEY variable
func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}

	return key, nil
}

// SetKey returns an error suggesting to set the environment variable
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	return fmt.Errorf("key is read from the environment: set %s to keep using this store", EnvKey)
}

// DeleteKey returns an error suggesting to unset the environment variable
func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("key is read from the environment: unset %s manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
