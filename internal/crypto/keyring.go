package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "boutiquebill"
	KeyName     = "store-encryption-key"

	// EnvKey overrides the OS keyring, for headless machines
	EnvKey = "BOUTIQUEBILL_STORE_KEY"
)

// NewKeyring returns the env keyring when EnvKey is set, otherwise the OS
// keyring (Keychain, Secret Service or Credential Manager).
func NewKeyring() Keyring {
	if os.Getenv(EnvKey) != "" {
		return &envKeyring{}
	}
	return &systemKeyring{}
}

type systemKeyring struct{}

// GetKey retrieves the encryption key from the OS keyring
func (k *systemKeyring) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}

	if key == "" {
		return "", errors.New("encryption key is empty")
	}

	return key, nil
}

// SetKey stores the encryption key in the OS keyring
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}

	return nil
}

// DeleteKey removes the encryption key from the OS keyring
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}

	return nil
}

// IsAvailable checks if the OS keyring is accessible by writing and
// removing a throwaway entry.
func (k *systemKeyring) IsAvailable() bool {
	testKey := "__boutiquebill_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}

	_ = keyring.Delete(ServiceName, testKey)
	return true
}
