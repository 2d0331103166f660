package signer

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var traceIDPattern = regexp.MustCompile(`^00-[0-9a-f]{32}-[0-9a-f]{16}-01$`)

func TestGenerateTraceID(t *testing.T) {
	t.Run("matches the template", func(t *testing.T) {
		trace, err := generateTraceID(nil)
		require.NoError(t, err)
		assert.Regexp(t, traceIDPattern, trace)
	})

	t.Run("span is the leading half of the trace segment", func(t *testing.T) {
		trace, err := generateTraceID(nil)
		require.NoError(t, err)
		assert.Equal(t, trace[3:19], trace[36:52])
	})

	t.Run("unique across calls", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			trace, err := generateTraceID(nil)
			require.NoError(t, err)
			require.False(t, seen[trace])
			seen[trace] = true
		}
	})

	t.Run("deterministic with injected source", func(t *testing.T) {
		a, err := generateTraceID(rand.New(rand.NewSource(5)))
		require.NoError(t, err)
		b, err := generateTraceID(rand.New(rand.NewSource(5)))
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Regexp(t, traceIDPattern, a)
	})
}
