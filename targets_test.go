package exifmeta

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTargets(t *testing.T) {
	dir := t.TempDir()
	photo := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("Test Image Data"), 0o644))

	assert.NoError(t, CheckTargets([]string{photo}))
	assert.True(t, errors.Is(CheckTargets(nil), ErrNoTargets))

	err := CheckTargets([]string{photo, filepath.Join(dir, "missing.jpg")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.jpg")
}
