package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("user@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.co"))
	assert.False(t, ValidEmail(""))
	assert.False(t, ValidEmail("no-at-sign"))
	assert.False(t, ValidEmail("user@nodot"))
	assert.False(t, ValidEmail("@example.com"))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("secret"))
	assert.False(t, ValidPassword("short"))
	assert.False(t, ValidPassword(""))
}
