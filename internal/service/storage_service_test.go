package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"task_maturity_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageUpload(t *testing.T) {
	root := t.TempDir()
	svc := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: root})

	url, err := svc.Upload(context.Background(), "reports/1/a.csv", strings.NewReader("x,y\n"), 4, "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/reports/1/a.csv", url)

	data, err := os.ReadFile(filepath.Join(root, "reports", "1", "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "x,y\n", string(data))

	require.NoError(t, svc.Delete(context.Background(), "reports/1/a.csv"))
	_, err = os.Stat(filepath.Join(root, "reports", "1", "a.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestStorageFallsBackToLocal(t *testing.T) {
	svc := NewStorageService(&config.StorageConfig{Type: "minio", LocalPath: t.TempDir()})
	_, ok := svc.Provider.(*LocalStorageProvider)
	assert.True(t, ok)
}
