package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntitySetIntersects(t *testing.T) {
	s := newEntitySet([]EntityID{"a", "b", "c"})

	assert.True(t, s.intersects([]EntityID{"c", "z"}))
	assert.False(t, s.intersects([]EntityID{"x", "y"}))
	assert.False(t, s.intersects(nil))
}

func TestEntitySetIntersection(t *testing.T) {
	s := newEntitySet([]EntityID{"a", "b"})

	got := s.intersection([]EntityID{"b", "z", "a", "a"})
	assert.Equal(t, []EntityID{"b", "a"}, got)

	assert.Nil(t, s.intersection([]EntityID{"x"}))
}
