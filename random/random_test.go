package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_SameSeedSameSequence(t *testing.T) {
	a, b := New(17), New(17)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
	}
}

func TestNew_ZeroSeed(t *testing.T) {
	r := New(0)
	for i := 0; i < 50; i++ {
		n := r.Intn(10)
		assert.True(t, n >= 0 && n < 10)
	}
}
