package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("rep@dealership.com"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing-dot@domain"))
}

func TestIsComplexPassword(t *testing.T) {
	assert.True(t, IsComplexPassword("Tr4de-in!"))
	assert.False(t, IsComplexPassword("short1!"), "below minimum length")
	assert.False(t, IsComplexPassword("alllowercase1!"), "no upper case")
	assert.False(t, IsComplexPassword("NoDigitsHere!"), "no digit")
	assert.False(t, IsComplexPassword("NoSpecial123"), "no special character")
}

func TestGenerateSecureToken(t *testing.T) {
	a, err := GenerateSecureToken(32)
	assert.NoError(t, err)
	b, err := GenerateSecureToken(32)
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
	assert.NotEmpty(t, a)
}
