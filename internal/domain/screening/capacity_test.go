package screening

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCapacity_Bounds(t *testing.T) {
	src := NewRandomCapacity(DefaultMinCapacity, DefaultMaxCapacity, 42)

	for i := 0; i < 1000; i++ {
		c := src.Capacity()
		assert.GreaterOrEqual(t, c, DefaultMinCapacity)
		assert.LessOrEqual(t, c, DefaultMaxCapacity)
	}
}

func TestRandomCapacity_SameSeedSameSequence(t *testing.T) {
	a := NewRandomCapacity(10, 100, 7)
	b := NewRandomCapacity(10, 100, 7)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Capacity(), b.Capacity())
	}
}

func TestRandomCapacity_NormalizesBounds(t *testing.T) {
	src := NewRandomCapacity(0, -5, 1)

	assert.Equal(t, 1, src.Capacity())
}

func TestFixedCapacity(t *testing.T) {
	assert.Equal(t, 25, FixedCapacity(25).Capacity())
}
