package prompt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/stretchr/testify/assert"
)

func TestValidatePort(t *testing.T) {
	for _, ok := range []string{"1", "8888", "65535"} {
		assert.NoError(t, ValidatePort(ok), ok)
	}
	for _, bad := range []string{"", "0", "65536", "-1", "http"} {
		assert.Error(t, ValidatePort(bad), bad)
	}
}

func TestValidateDuration(t *testing.T) {
	for _, ok := range []string{"0", "0s", "100ms", "2s"} {
		assert.NoError(t, ValidateDuration(ok), ok)
	}
	for _, bad := range []string{"", "soon", "-1s", "100"} {
		assert.Error(t, ValidateDuration(bad), bad)
	}
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "index.html")
	assert.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.NoError(t, ValidateDirectory(""))
	assert.NoError(t, ValidateDirectory(dir))
	assert.Error(t, ValidateDirectory(file))
	assert.Error(t, ValidateDirectory(filepath.Join(dir, "missing")))
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, wrapError(nil))
	assert.ErrorIs(t, wrapError(promptui.ErrInterrupt), ErrAborted)
	assert.ErrorIs(t, wrapError(promptui.ErrEOF), ErrAborted)

	other := errors.New("tty gone")
	assert.Equal(t, other, wrapError(other))
	assert.True(t, IsAborted(ErrAborted))
	assert.False(t, IsAborted(other))
}
