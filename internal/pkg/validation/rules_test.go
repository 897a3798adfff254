package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana.perez@ucr.ac.cr"))
	assert.True(t, IsEmail("Ana@Example.COM"))
	assert.False(t, IsEmail("ana@"))
	assert.False(t, IsEmail(""))
}

func TestIsName(t *testing.T) {
	assert.True(t, IsName("Ñu"))
	assert.False(t, IsName("A"))
	assert.False(t, IsName(""))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone(""))
	assert.True(t, IsPhone("+506 8888-1234"))
	assert.False(t, IsPhone("call me"))
}

func TestStringValidation_Optional(t *testing.T) {
	v := NewStringValidation("").WithRequired(false).WithMinLength(3)
	assert.True(t, v.Validate())

	v = NewStringValidation("ab").WithRequired(false).WithMinLength(3)
	assert.False(t, v.Validate())
}
