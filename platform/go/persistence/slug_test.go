package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expectSlug  string
		expectError bool
	}{
		{
			name:       "already normalized",
			input:      "acme-co",
			expectSlug: "acme-co",
		},
		{
			name:       "trims whitespace and lowercases",
			input:      "  Deck-Builders ",
			expectSlug: "deck-builders",
		},
		{
			name:        "empty string",
			input:       "   ",
			expectError: true,
		},
		{
			name:        "invalid characters",
			input:       "acme_co",
			expectError: true,
		},
		{
			name:        "leading hyphen",
			input:       "-bad-slug",
			expectError: true,
		},
		{
			name:        "too short",
			input:       "ab",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			slug, err := NormalizeSlug(tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expectSlug, slug)
		})
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	got, err := NormalizeIdentifier(" deal_stage ")
	require.NoError(t, err)
	require.Equal(t, "deal_stage", got)

	for _, bad := range []string{"", "Deal", "deal-stage", "1deal"} {
		_, err := NormalizeIdentifier(bad)
		require.Error(t, err, bad)
	}
}
