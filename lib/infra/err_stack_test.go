package infra

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
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
		want   string
	}{
		{initPC, "%s", "err_stack_test.go"},
		{initPC, "%n", "init"},
		{initPC, "%d", "14"},
		{initPC, "%v", "err_stack_test.go:14"},
		{Frame(0), "%s", "unknownFile"},
		{Frame(0), "%n", "unknownFunc"},
		{Frame(0), "%d", "0"},
	}

	for _, tc := range testcases {
		require.Equal(t, tc.want, fmt.Sprintf(tc.format, tc.Frame))
	}
}

func TestFrameMarshalText(t *testing.T) {
	text, err := initPC.MarshalText()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(text), "github.com/benz9527/xtree/lib/infra.init "))
	require.True(t, strings.HasSuffix(string(text), "err_stack_test.go:14"))

	text, err = Frame(0).MarshalText()
	require.NoError(t, err)
	require.Equal(t, "unknownFrame", string(text))
}

func TestWrapErrorStackWithMessage(t *testing.T) {
	require.Nil(t, WrapErrorStackWithMessage(nil, "nothing"))

	sentinel := errors.New("broken")
	err := WrapErrorStackWithMessage(sentinel, "rebalance")
	require.ErrorIs(t, err, sentinel)
	require.Equal(t, "rebalance: broken", err.Error())

	es, ok := AsErrorStack(fmt.Errorf("outer: %w", err))
	require.True(t, ok)
	require.NotEmpty(t, es.Frames())
	require.Equal(t, "TestWrapErrorStackWithMessage", fmt.Sprintf("%n", es.Frames()[0]))

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, es.MarshalLogObject(enc))
	require.Equal(t, "rebalance: broken", enc.Fields["error"])
	require.NotEmpty(t, enc.Fields["errorStack"])
}

func TestNewErrorStack(t *testing.T) {
	err := NewErrorStack("empty config")
	require.Equal(t, "empty config", err.Error())
	_, ok := AsErrorStack(err)
	require.True(t, ok)
	require.Nil(t, errors.Unwrap(err))
}
