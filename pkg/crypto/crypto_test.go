package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("sup3rv1sor!")
	require.NoError(t, err)
	require.NotEqual(t, "sup3rv1sor!", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	require.True(t, VerifyPassword(hash, "sup3rv1sor!"))
	require.False(t, VerifyPassword(hash, "sup3rv1sor"))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("guard-pass")
	require.NoError(t, err)

	second, err := HashPassword("guard-pass")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
