package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"1.2万", 12000},
		{"3千", 3000},
		{"500", 500},
		{"8.6w", 86000},
		{"2W", 20000},
		{"1,234", 1234},
		{" 42 ", 42},
		{"", 0},
		{"赞", 0},
		{"-5", 0},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ParseCount(tc.in), "input %q", tc.in)
	}
}

func TestParseDurationSeconds(t *testing.T) {
	require.Equal(t, 754, ParseDurationSeconds("12:34"))
	require.Equal(t, 4834, ParseDurationSeconds("01:20:34"))
	require.Equal(t, 0, ParseDurationSeconds("12"))
	require.Equal(t, 0, ParseDurationSeconds("ab:cd"))
	require.Equal(t, 0, ParseDurationSeconds(""))
}
