package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialValidator_ValidateEmail(t *testing.T) {
	validator := NewCredentialValidator()

	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{name: "valid", email: "harry@hogwarts.edu"},
		{name: "plus addressing", email: "harry+owl@hogwarts.edu"},
		{name: "empty", email: "", wantErr: true},
		{name: "no at sign", email: "harry", wantErr: true},
		{name: "display name", email: "Harry <harry@hogwarts.edu>", wantErr: true},
		{name: "spaces", email: "harry potter@hogwarts.edu", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCredentialValidator_ValidatePassword(t *testing.T) {
	validator := NewCredentialValidator()

	assert.NoError(t, validator.ValidatePassword("potter"))
	assert.NoError(t, validator.ValidatePassword(strings.Repeat("a", MaxPasswordLen)))

	err := validator.ValidatePassword("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not be empty")

	err = validator.ValidatePassword(strings.Repeat("a", MaxPasswordLen+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 72 bytes")
}

func TestCredentialValidator_ValidateRegister(t *testing.T) {
	validator := NewCredentialValidator()

	assert.NoError(t, validator.ValidateRegister("hermione@hogwarts.edu", "granger"))

	err := validator.ValidateRegister("hermione", "granger")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email validation failed")

	err = validator.ValidateRegister("hermione@hogwarts.edu", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password validation failed")
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	hash, err := h.Hash("weasley")
	require.NoError(t, err)
	assert.NotEqual(t, "weasley", hash)
	assert.NoError(t, h.Compare(hash, "weasley"))
	assert.Error(t, h.Compare(hash, "Weasley"))

	other, err := h.Hash("weasley")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes are salted")

	assert.Equal(t, DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, DefaultCost, NewBcryptHasher(99).cost)
}
