package slug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reeltrack/utils/slug"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "My Show", "my-show"},
		{"punctuation stripped", "My   Show!!", "my-show"},
		{"already normalized", "my-show", "my-show"},
		{"collapses hyphens", "a -- b", "a-b"},
		{"trims edges", "  --hello--  ", "hello"},
		{"transliterates accents", "Amélie", "amelie"},
		{"mixed case digits", "Blade Runner 2049", "blade-runner-2049"},
		{"nothing usable", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, slug.Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"My   Show!!", "Amélie", "a -- b", "Blade Runner 2049", ""}
	for _, in := range inputs {
		once := slug.Normalize(in)
		require.Equal(t, once, slug.Normalize(once), "input %q", in)
	}
}
