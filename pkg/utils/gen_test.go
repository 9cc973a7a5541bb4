package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenOrderNumber(t *testing.T) {
	a := GenOrderNumber("salt", 1234567890123)
	b := GenOrderNumber("salt", 1234567890124)
	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.GreaterOrEqual(t, len(a), len("ORD-")+10)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, GenOrderNumber("salt", 1234567890123))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "JANE15", NormalizeCode("  jane15 "))
	assert.Equal(t, "jane@example.com", NormalizeEmail(" Jane@Example.COM"))
}
