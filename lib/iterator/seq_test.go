package iterator

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromSeq(t *testing.T) {
	first, last := FromSeq(slices.Values([]string{"a", "b", "c"}))
	require.Equal(t, InputCategory, first.Category())

	got := []string{}
	for it := first; !it.Equal(last); it = it.Next() {
		got = append(got, it.Value())
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.True(t, first.Equal(last))
	require.Panics(t, func() {
		first.Value()
	})

	efirst, elast := FromSeq(slices.Values([]string{}))
	require.True(t, efirst.Equal(elast))

	sfirst, slast := FromSeq(slices.Values([]int{1, 2, 3}))
	require.Equal(t, 1, sfirst.Value())
	sfirst.Stop()
	require.True(t, sfirst.Equal(slast))
}
