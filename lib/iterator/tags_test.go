package iterator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategoryRefines(t *testing.T) {
	testcases := []struct {
		name     string
		c, base  Category
		expected bool
	}{
		{"input is input", InputCategory, InputCategory, true},
		{"forward is input", ForwardCategory, InputCategory, true},
		{"random-access is input", RandomAccessCategory, InputCategory, true},
		{"output is not input", OutputCategory, InputCategory, false},
		{"input is not output", InputCategory, OutputCategory, false},
		{"output is output", OutputCategory, OutputCategory, true},
		{"input is not forward", InputCategory, ForwardCategory, false},
		{"bidirectional is forward", BidirectionalCategory, ForwardCategory, true},
		{"forward is not bidirectional", ForwardCategory, BidirectionalCategory, false},
		{"random-access is bidirectional", RandomAccessCategory, BidirectionalCategory, true},
		{"bidirectional is not random-access", BidirectionalCategory, RandomAccessCategory, false},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, tc.c.Refines(tc.base))
		})
	}
}

func TestTagEmbedding(t *testing.T) {
	type randomIt struct {
		RandomAccessTag
		idx int
	}
	type bidiIt struct {
		BidirectionalTag
	}
	require.Equal(t, RandomAccessCategory, randomIt{}.Category())
	require.Equal(t, BidirectionalCategory, bidiIt{}.Category())
	require.Equal(t, "random-access", RandomAccessCategory.String())
	require.Equal(t, "unknown", Category(0).String())
}
