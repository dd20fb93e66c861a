package log

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestLog_Format(t *testing.T) {
	var buf syncBuffer
	InitWriter(&buf)
	defer Reset()

	Error(CatScanner, "pop of bottom context", "offset", 12, "kind")
	out := buf.String()

	require.Contains(t, out, "[ERROR] [scanner] pop of bottom context")
	require.Contains(t, out, "offset=12")
	require.Contains(t, out, "kind=<missing>")
	require.True(t, strings.HasSuffix(out, "\n"))
}

func TestLog_MinLevelFilters(t *testing.T) {
	var buf syncBuffer
	InitWriter(&buf)
	defer Reset()

	SetMinLevel(LevelWarn)
	Debug(CatMatcher, "hidden")
	Warn(CatMatcher, "shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

func TestLog_ErrorErrAndDisabled(t *testing.T) {
	var buf syncBuffer
	InitWriter(&buf)
	defer Reset()

	ErrorErr(CatConfig, "read failed", errors.New("boom"))
	require.Contains(t, buf.String(), "error=boom")

	SetEnabled(false)
	Info(CatConfig, "after disable")
	require.NotContains(t, buf.String(), "after disable")
}

func TestLog_NoLoggerIsSilent(t *testing.T) {
	Reset()
	require.NotPanics(t, func() { Info(CatUI, "nobody listens") })
	require.Nil(t, Subscribe(context.Background()))
}

func TestLog_Subscribe(t *testing.T) {
	var buf syncBuffer
	InitWriter(&buf)
	defer Reset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := Subscribe(ctx)
	require.NotNil(t, ch)

	Info(CatTheme, "theme loaded", "name", "nord")

	select {
	case ev := <-ch:
		require.Contains(t, ev.Payload, "theme loaded name=nord")
	case <-time.After(100 * time.Millisecond):
		require.Fail(t, "timeout waiting for log event")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"warning", LevelWarn, true},
		{"error", LevelError, true},
		{"loud", LevelDebug, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if !tc.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
