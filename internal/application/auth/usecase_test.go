package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/memory"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/session"
)

type fixture struct {
	uc       *auth.AuthUseCase
	store    *memory.Store
	sessions *session.Store
}

func newFixture() fixture {
	store := memory.NewStore()
	sessions := session.NewStore(100, time.Hour)
	uc := auth.NewAuthUseCase(store.Users(), store.Roles(), store, sessions, auth.Config{BcryptCost: bcrypt.MinCost})
	return fixture{uc: uc, store: store, sessions: sessions}
}

func TestRegister_AsignaRolUserYGuardaHash(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	out, err := f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, []string{entity.RoleUser}, out.Roles)

	u, err := f.store.Users().GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "pw1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw1")))
	assert.True(t, u.HasRole(entity.RoleUser))
}

func TestRegister_DuplicadoNoModificaElExistente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	sid := f.sessions.Create()
	_, err = f.uc.Login(ctx, sid, dto.LoginRequest{Username: "alice", Password: "pw1"})
	assert.NoError(t, err, "la contraseña original sigue valiendo")

	users, err := f.store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_Validacion(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Register(context.Background(), dto.RegisterRequest{Username: "   ", Password: "pw"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.uc.Register(context.Background(), dto.RegisterRequest{Username: "bob", Password: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_ConcurrenteSoloUnoGana(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Register(ctx, dto.RegisterRequest{Username: "carol", Password: "pw"})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
		}
	}
	assert.Equal(t, 1, ok)
}

func TestLogin_EstableceSesion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	sid := f.sessions.Create()
	identity, err := f.uc.Login(ctx, sid, dto.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)

	s, ok := f.sessions.Load(sid)
	require.True(t, ok)
	assert.Equal(t, "alice", s.Username)

	got, err := f.uc.RequireSession(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, []string{entity.RoleUser}, got.Roles)
}

func TestLogin_CredencialesInvalidasMismoError(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	sid := f.sessions.Create()

	_, errWrongPass := f.uc.Login(ctx, sid, dto.LoginRequest{Username: "alice", Password: "nope"})
	_, errUnknown := f.uc.Login(ctx, sid, dto.LoginRequest{Username: "mallory", Password: "pw1"})

	assert.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())

	s, _ := f.sessions.Load(sid)
	assert.False(t, s.LoggedIn())
}

func TestLogout_Idempotente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Register(ctx, dto.RegisterRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	sid := f.sessions.Create()
	_, err = f.uc.Login(ctx, sid, dto.LoginRequest{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(sid))
	require.NoError(t, f.uc.Logout(sid))
	require.NoError(t, f.uc.Logout("sesion-inexistente"))

	_, err = f.uc.RequireSession(ctx, sid)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRequireSession_SinLogin(t *testing.T) {
	f := newFixture()
	_, err := f.uc.RequireSession(context.Background(), f.sessions.Create())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = f.uc.RequireSession(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
