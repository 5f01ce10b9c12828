package domain

import (
	"errors"
	"strings"
)

// User is the logged-in shop operator
type User struct {
	Email string `json:"email"`
}

// Validate returns an error if the user is invalid
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return errors.New("user email is required")
	}
	return nil
}
