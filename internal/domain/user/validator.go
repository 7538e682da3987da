package user

import (
	"errors"
	"fmt"
	"net/mail"
)

// MaxPasswordLen is the bcrypt input limit in bytes.
const MaxPasswordLen = 72

// Validator checks credential values once the payload shape is known to be right.
type Validator interface {
	ValidateRegister(email, password string) error
	ValidateEmail(email string) error
	ValidatePassword(password string) error
}

type CredentialValidator struct{}

func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// ValidateRegister checks the email and password of a new account.
func (v *CredentialValidator) ValidateRegister(email, password string) error {
	if err := v.ValidateEmail(email); err != nil {
		return fmt.Errorf("email validation failed: %w", err)
	}

	if err := v.ValidatePassword(password); err != nil {
		return fmt.Errorf("password validation failed: %w", err)
	}

	return nil
}

func (v *CredentialValidator) ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email must not be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%q is not a valid email address", email)
	}

	return nil
}

func (v *CredentialValidator) ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}

	if len(password) > MaxPasswordLen {
		return fmt.Errorf("password must be at most %d bytes", MaxPasswordLen)
	}

	return nil
}
