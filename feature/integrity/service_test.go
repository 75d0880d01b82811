package integrity

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"broad-babel/core/database/testdb"
	"broad-babel/core/source"
	"broad-babel/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupService wires a seeded sqlite table and a verified source file.
func setupService(t *testing.T, client *mocks.Client) *Service {
	t.Helper()

	content := []byte("names")
	path := filepath.Join(t.TempDir(), "names.db")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	sum := md5.Sum(content)
	fetcher, err := source.New(nil, "md5:"+hex.EncodeToString(sum[:]), path, zap.NewNop())
	require.NoError(t, err)

	if client == nil {
		return NewService(testdb.Names(t, nil), "names", fetcher, nil, "babel", []string{"names.db"}, zap.NewNop())
	}
	return NewService(testdb.Names(t, nil), "names", fetcher, client, "babel", []string{"names.db"}, zap.NewNop())
}

func TestService_RunAll(t *testing.T) {
	t.Run("Healthy without storage", func(t *testing.T) {
		svc := setupService(t, nil)

		report, ok := svc.RunAll(context.Background())
		assert.True(t, ok)
		assert.Equal(t, map[string]interface{}{"status": "skipped"}, report["storage"])
	})

	t.Run("Missing object fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "babel").Return(true, nil)
		client.On("StatObject", mock.Anything, "babel", "names.db", mock.Anything).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey"})
		svc := setupService(t, client)

		report, ok := svc.RunAll(context.Background())
		assert.False(t, ok)
		assert.Equal(t, []string{"names.db"}, report["storage"].(map[string]interface{})["missing"])
	})

	t.Run("Missing table fails", func(t *testing.T) {
		svc := setupService(t, nil)
		svc.table = "other"

		_, ok := svc.RunAll(context.Background())
		assert.False(t, ok)
	})
}

func TestService_CheckStorageDisabled(t *testing.T) {
	svc := setupService(t, nil)
	_, err := svc.CheckStorage(context.Background())
	assert.ErrorIs(t, err, ErrStorageDisabled)
}
