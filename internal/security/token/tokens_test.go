package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOpaqueToken(t *testing.T) {
	a, err := GenerateOpaqueToken(16)
	require.NoError(t, err)
	b, err := GenerateOpaqueToken(16)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// base64url sin padding de 16 bytes
	assert.Len(t, a, 22)
	assert.NotContains(t, a, "=")
}

func TestSHA256Base64URL(t *testing.T) {
	h := SHA256Base64URL("refresh-token-crudo")

	assert.Equal(t, h, SHA256Base64URL("refresh-token-crudo"))
	assert.NotEqual(t, h, SHA256Base64URL("otro"))
	// sha256 en base64url sin padding: 43 caracteres
	assert.Len(t, h, 43)
	assert.NotContains(t, h, "=")
	assert.NotContains(t, h, "refresh-token-crudo")
}
