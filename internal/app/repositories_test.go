package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/pkg/config"
)

func TestOpenRepositories_Memory(t *testing.T) {
	repos, err := OpenRepositories(context.Background(), config.DBConfig{Driver: "memory"})
	require.NoError(t, err)
	defer repos.Close()

	users, err := repos.Users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, repos.Tx)
}

func TestOpenRepositories_DriverDesconocido(t *testing.T) {
	_, err := OpenRepositories(context.Background(), config.DBConfig{Driver: "sqlite"})
	assert.Error(t, err)
}
