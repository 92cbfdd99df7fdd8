package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcat(t *testing.T) {
	require.Equal(t, []int{1, 2, 3, 4}, Concat([]int{1, 2}, []int{3, 4}))
	require.Nil(t, Concat[int]())
}

func TestContains(t *testing.T) {
	ids := []uint32{1, 2, 3}
	require.True(t, Contains(ids, 2))
	require.False(t, Contains(ids, 4))
}

func TestWithout(t *testing.T) {
	ids := []uint32{1, 2, 3, 2}
	require.Equal(t, []uint32{1, 3}, Without(ids, 2))
}
