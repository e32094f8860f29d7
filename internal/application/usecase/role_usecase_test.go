package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/memory"
)

func TestSeedDefaults_Idempotente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewRoleUseCase(store.Roles(), store)
	ctx := context.Background()

	require.NoError(t, uc.SeedDefaults(ctx))
	require.NoError(t, uc.SeedDefaults(ctx))

	roles, err := store.Roles().List(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	assert.ElementsMatch(t, entity.DefaultRoles, names)
}

func TestEnsureRole(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewRoleUseCase(store.Roles(), store)
	ctx := context.Background()

	a, err := uc.EnsureRole(ctx, "editor")
	require.NoError(t, err)
	b, err := uc.EnsureRole(ctx, " editor ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	_, err = uc.EnsureRole(ctx, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGrant_YListadoDeUsuarios(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	u := &entity.User{ID: uuid.NewString(), Username: "root", PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, store.Users().Create(ctx, u))

	roles := usecase.NewRoleUseCase(store.Roles(), store)
	require.NoError(t, roles.Grant(ctx, u.ID, entity.RoleAdmin))
	require.NoError(t, roles.Grant(ctx, u.ID, entity.RoleUser))
	require.NoError(t, roles.Grant(ctx, u.ID, entity.RoleAdmin))

	list, err := usecase.NewUserUseCase(store.Users()).List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "root", list[0].Username)
	assert.Equal(t, []string{entity.RoleAdmin, entity.RoleUser}, list[0].Roles)
}

func TestGrant_UsuarioInexistenteNoCreaRol(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	roles := usecase.NewRoleUseCase(store.Roles(), store)

	err := roles.Grant(ctx, uuid.NewString(), "auditor")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := store.Roles().List(ctx)
	require.NoError(t, err)
	for _, r := range list {
		assert.NotEqual(t, "auditor", r.Name, "sin usuario no se crea el rol")
	}

	assert.ErrorIs(t, roles.Grant(ctx, uuid.NewString(), " "), domain.ErrValidation)
}
