package db

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnString(t *testing.T) {
	t.Run("database url wins", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/carnes")
		t.Setenv("DB_HOST", "ignored")
		got, err := ConnString()
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@localhost/carnes", got)
	})

	t.Run("individual variables with defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "db")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_USER", "carnes")
		t.Setenv("DB_PASSWORD", "secret")
		t.Setenv("DB_NAME", "catalog")
		t.Setenv("DB_SSLMODE", "")
		got, err := ConnString()
		require.NoError(t, err)
		assert.Equal(t, "host=db port=5432 user=carnes password=secret dbname=catalog sslmode=disable", got)
	})

	t.Run("missing variables", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("DB_USER", "")
		t.Setenv("DB_NAME", "")
		_, err := ConnString()
		assert.Error(t, err)
	})
}

func TestSchema_WholesalePriceKeepsFullPrecision(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`wholesale_price\s+NUMERIC\s+NOT NULL`), Schema)
	assert.NotContains(t, Schema, "NUMERIC(")
}
