package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "ledger",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unknown Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})
}

func TestDialector(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		want   string
	}{
		{"MySQL", DriverMySQL, "mysql"},
		{"SQLite", DriverSQLite, "sqlite"},
		{"DefaultSQLite", "", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(Config{Driver: tt.driver, User: "u", Password: "p@ss", Name: "x"}, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
