package infra

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckIndex(t *testing.T) {
	testcases := []struct {
		name  string
		idx   int
		size  int
		inErr bool
	}{
		{"first", 0, 3, false},
		{"last", 2, 3, false},
		{"equal to size", 3, 3, true},
		{"negative", -1, 3, true},
		{"empty", 0, 0, true},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			err := CheckIndex(tc.idx, tc.size)
			if !tc.inErr {
				require.NoError(tt, err)
				return
			}
			require.ErrorIs(tt, err, ErrOutOfRange)
			var oor *OutOfRangeError
			require.True(tt, errors.As(err, &oor))
			require.Equal(tt, tc.idx, oor.Index)
			require.Equal(tt, tc.size, oor.Size)
		})
	}
}

func TestErrKeyNotFoundIsOutOfRange(t *testing.T) {
	require.ErrorIs(t, ErrKeyNotFound, ErrOutOfRange)
	require.NotErrorIs(t, ErrLengthExceeded, ErrOutOfRange)
}
