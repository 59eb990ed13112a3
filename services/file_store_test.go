package services

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSaveAndRemove(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	store := NewFileStore(dir)

	ref, err := store.Save(multipartFile(t, "../../etc/passwd.pdf", "application/pdf", []byte("%PDF")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "uploads/"))
	assert.NotContains(t, strings.TrimPrefix(ref, "uploads/"), "/")

	name := strings.TrimPrefix(ref, "uploads/")
	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ref))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, store.Remove(ref))
	assert.Error(t, store.Remove("uploads/../secret"))
}
