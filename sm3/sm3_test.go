package sm3

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "abc reference vector",
			input: "abc",
			want:  "66c7f0f462eeedd9d1f2d46bdc10e4e24167c4875cf2f7a2297da02b8f4ba8e0",
		},
		{
			name:  "empty input",
			input: "",
			want:  "1ab21d8355cfa17f8e61194831e81a8f22bec8c728fefb747ed035eb5082aa2b",
		},
		{
			name:  "two block message",
			input: strings.Repeat("abcd", 16),
			want:  "debe9ff92275b8a138604889c18e5a4d6fdb70e5387e5765293dcba39c0c5732",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := Sum([]byte(tt.input))
			assert.Equal(t, tt.want, hex.EncodeToString(digest[:]))
		})
	}
}

func TestSumStable(t *testing.T) {
	t.Run("identical input yields identical digest", func(t *testing.T) {
		a := Sum([]byte("payload"))
		b := Sum([]byte("payload"))
		assert.Equal(t, a, b)
	})

	t.Run("single bit flip changes digest", func(t *testing.T) {
		a := Sum([]byte{0x00})
		b := Sum([]byte{0x01})
		assert.NotEqual(t, a, b)
	})

	t.Run("padding boundary lengths", func(t *testing.T) {
		// 55, 56, and 64 bytes exercise the one-block, length-spill,
		// and two-block padding paths.
		seen := map[string]bool{}
		for _, n := range []int{0, 1, 55, 56, 63, 64, 65, 127, 128} {
			digest := Sum(make([]byte, n))
			s := hex.EncodeToString(digest[:])
			assert.False(t, seen[s], "digest collision at length %d", n)
			seen[s] = true
		}
	})
}
