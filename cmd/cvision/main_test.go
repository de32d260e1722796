package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("CVISION_TEST_VAR", "from-env")
	assert.Equal(t, "from-env", envOr("CVISION_TEST_VAR", "fallback"))
	assert.Equal(t, "fallback", envOr("CVISION_TEST_VAR_UNSET", "fallback"))
}

func TestBuildMultipart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 contenido"), 0o600))

	body, contentType, err := buildMultipart(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))
	assert.Contains(t, string(body), `filename="cv.pdf"`)
	assert.Contains(t, string(body), "%PDF-1.4 contenido")
}
