package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	path, err := s.Upload(ctx, strings.NewReader("workbook bytes"), "exports/timecards-1.xlsx", "application/octet-stream")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("exports", "timecards-1.xlsx"), path)

	data, err := os.ReadFile(filepath.Join(s.basePath, path))
	require.NoError(t, err)
	assert.Equal(t, "workbook bytes", string(data))

	require.NoError(t, s.Delete(ctx, path))
	_, err = os.Stat(filepath.Join(s.basePath, path))
	assert.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	assert.NoError(t, s.Delete(ctx, path))
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	_, err = s.Upload(ctx, strings.NewReader("x"), "../outside.txt", "text/plain")
	assert.Error(t, err)

	err = s.Delete(ctx, "../../etc/passwd")
	assert.Error(t, err)
}

func TestLocalStorageGetURL(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := s.GetURL(ctx, "exports/timecards-1.xlsx", 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/exports/timecards-1.xlsx", url)
}
