package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid MySQL Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "babel",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite File", func(t *testing.T) {
		cfg := Config{
			Driver: DriverSQLite,
			Path:   filepath.Join(t.TempDir(), "names.db"),
		}
		db, err := Connect(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})

	t.Run("Pure Go SQLite", func(t *testing.T) {
		cfg := Config{
			Driver: DriverSQLitePure,
			Path:   filepath.Join(t.TempDir(), "names.db"),
		}
		db, err := Connect(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, db)
	})
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"Empty", Config{}, ":memory:"},
		{"Memory", Config{Path: ":memory:", ReadOnly: true}, ":memory:"},
		{"Writable", Config{Path: "/tmp/names.db"}, "/tmp/names.db"},
		{"ReadOnly", Config{Path: "/tmp/names.db", ReadOnly: true}, "file:/tmp/names.db?mode=ro"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SQLiteDSN(tt.cfg))
		})
	}
}
