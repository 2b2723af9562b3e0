package generics

import (
	"cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSet(t *testing.T) {
	// Sets are created empty.
	s := MakeSet[int](10)
	assert.Len(t, s, 0)

	// Check inserting and recovery.
	s.Insert(3, 7)
	assert.Len(t, s, 2)
	assert.True(t, s.Has(3))
	assert.True(t, s.Has(7))
	assert.False(t, s.Has(5))

	s2 := SetWith(5, 7)
	assert.Len(t, s2, 2)
	assert.True(t, s2.Has(5))
	assert.False(t, s2.Has(3))

	s3 := s.Sub(s2)
	assert.Len(t, s3, 1)
	assert.True(t, s3.Has(3))

	delete(s, 7)
	assert.True(t, s.Equal(s3))
	assert.False(t, s.Equal(s2))
	assert.False(t, s.Equal(SetWith(-3)))

	var empty Set[int]
	assert.True(t, empty.Equal(MakeSet[int]()))
	assert.Len(t, empty, 0)
}

func TestSortedFunc(t *testing.T) {
	s := SetWith(5, 1, 3)
	// Map iteration is deliberately non-deterministic, so repeat to show ordering is stable.
	for range 100 {
		assert.Equal(t, []int{1, 3, 5}, SortedFunc(s, cmp.Compare[int]))
	}
	assert.Nil(t, SortedFunc(MakeSet[int](), cmp.Compare[int]))
}
