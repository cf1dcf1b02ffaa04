package sessions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenFormat(t *testing.T) {
	token, err := NewToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, "TKN"))
	// "TKN" + unix millis + 6 hex chars
	assert.GreaterOrEqual(t, len(token), 3+13+6)
	assert.Equal(t, strings.ToUpper(token), token)
}

func TestNewTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		token, err := NewToken()
		require.NoError(t, err)
		assert.False(t, seen[token], "token %s minted twice", token)
		seen[token] = true
	}
}
