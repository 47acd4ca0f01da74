package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisitorHashDeterministic(t *testing.T) {
	a := VisitorHash("203.0.113.7")
	b := VisitorHash("203.0.113.7")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotContains(t, a, "203.0.113.7")
}

func TestVisitorHashDistinguishesAddresses(t *testing.T) {
	assert.NotEqual(t, VisitorHash("203.0.113.7"), VisitorHash("203.0.113.8"))
}
