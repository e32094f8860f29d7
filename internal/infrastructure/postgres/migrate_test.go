package postgres

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", pgx5URL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/app", pgx5URL("postgresql://u@db/app"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}

func TestMigrationsEmbebidas(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Len(t, files, 4, "cada migración tiene up y down")
}
