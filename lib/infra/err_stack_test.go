package infra

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

var initPC = caller()

func caller() Frame {
	var PCs [3]uintptr
	n := runtime.Callers(2, PCs[:])
	frames := runtime.CallersFrames(PCs[:n])
	frame, _ := frames.Next()
	return Frame(frame.PC)
}

func TestFrameFormat(t *testing.T) {
	testcases := []struct {
		Frame
		format string
		check  func(t *testing.T, res string)
	}{
		{
			initPC,
			"%s",
			func(t *testing.T, res string) {
				require.Equal(t, "err_stack_test.go", res)
			},
		},
		{
			initPC,
			"%+s",
			func(t *testing.T, res string) {
				require.True(t, strings.HasPrefix(res, "github.com/benz9527/xstl/lib/infra.init"))
				require.True(t, strings.HasSuffix(res, "lib/infra/err_stack_test.go"))
			},
		},
		{
			initPC,
			"%n",
			func(t *testing.T, res string) {
				require.Equal(t, "init", res)
			},
		},
		{
			initPC,
			"%v",
			func(t *testing.T, res string) {
				require.True(t, strings.HasPrefix(res, "err_stack_test.go:"))
			},
		},
		{
			Frame(0),
			"%s",
			func(t *testing.T, res string) {
				require.Equal(t, "unknownFile", res)
			},
		},
		{
			Frame(0),
			"%n",
			func(t *testing.T, res string) {
				require.Equal(t, "unknownFunc", res)
			},
		},
		{
			Frame(0),
			"%d",
			func(t *testing.T, res string) {
				require.Equal(t, "0", res)
			},
		},
	}

	for _, tc := range testcases {
		tc.check(t, fmt.Sprintf(tc.format, tc.Frame))
	}
}

func TestFrameMarshal(t *testing.T) {
	text, err := Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "unknownFrame", string(text))

	text, err = initPC.MarshalText()
	require.NoError(t, err)
	require.Contains(t, string(text), "err_stack_test.go:")

	_bytes, err := json.Marshal(Frame(0))
	require.NoError(t, err)
	require.Equal(t, `{"frame":"unknownFrame"}`, string(_bytes))
}

func TestErrorStack(t *testing.T) {
	require.NoError(t, WrapErrorStack(nil))
	require.NoError(t, AppendErrorStack(nil, nil))

	err := NewErrorStack("boom")
	require.EqualError(t, err, "boom")
	var es ErrorStack
	require.True(t, errors.As(err, &es))
	require.NotEmpty(t, es.Frames())
	require.Contains(t, fmt.Sprintf("%+v", err), "err_stack_test.go")

	wrapped := WrapErrorStack(ErrLengthExceeded)
	require.ErrorIs(t, wrapped, ErrLengthExceeded)
	require.Same(t, wrapped, WrapErrorStack(wrapped))

	merged := AppendErrorStack(ErrContainerEmpty, nil, ErrBadAlloc)
	require.ErrorIs(t, merged, ErrContainerEmpty)
	require.ErrorIs(t, merged, ErrBadAlloc)
	require.Len(t, multierr.Errors(merged.(ErrorStack).Unwrap()), 2)

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, merged.(ErrorStack).MarshalLogObject(enc))
	require.Len(t, enc.Fields["errors"], 2)
	require.NotEmpty(t, enc.Fields["errorStack"])
}
