package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	h, err := Hash("demo123")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(h, "$2a$10$"), "cost 10 bcrypt hash expected, got %s", h)
	assert.True(t, Verify(h, "demo123"))
	assert.False(t, Verify(h, "demo124"))
}

func TestHash_Salted(t *testing.T) {
	a, err := Hash("same")
	require.NoError(t, err)
	b, err := Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerify_BadHash(t *testing.T) {
	assert.False(t, Verify("", "x"))
	assert.False(t, Verify("not-a-hash", "x"))
}
