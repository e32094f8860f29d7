package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos de usuarios y roles atados a ella.
type TxRunner interface {
	RunAuth(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
	) error) error
}

// Config parámetros del hash de contraseñas.
type Config struct {
	BcryptCost int // 0 = bcrypt.DefaultCost
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y guardia de sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	tx       TxRunner
	sessions ports.SessionStore
	cost     int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	tx TxRunner,
	sessions ports.SessionStore,
	cfg Config,
) *AuthUseCase {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthUseCase{userRepo: userRepo, roleRepo: roleRepo, tx: tx, sessions: sessions, cost: cost}
}

// Register crea un usuario con el rol "user". Alta del usuario, creación del rol si falta
// y asociación van en una sola transacción. ErrDuplicateUsername si el username ya existe;
// en ese caso la fila existente no se toca.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrValidation
		}
		return nil, err
	}

	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	err = uc.tx.RunAuth(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		existing, err := userRepo.GetByUsername(ctx, user.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateUsername
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		role, err := roleRepo.Ensure(ctx, entity.RoleUser)
		if err != nil {
			return err
		}
		if err := roleRepo.Assign(ctx, user.ID, role.ID); err != nil {
			return err
		}
		user.Roles = []entity.Role{*role}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password y deja la identidad en la sesión sessionID.
// Usuario desconocido y contraseña incorrecta devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, sessionID string, in dto.LoginRequest) (*dto.Identity, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Igualar el costo del camino con usuario existente.
		_ = bcrypt.CompareHashAndPassword(uc.dummy(), []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	err = uc.sessions.Update(sessionID, func(s *entity.Session) error {
		s.Username = user.Username
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.Identity{Username: user.Username, Roles: user.RoleNames()}, nil
}

// Logout limpia la identidad de la sesión. Idempotente: sin sesión o ya anónima no es error.
func (uc *AuthUseCase) Logout(sessionID string) error {
	err := uc.sessions.Update(sessionID, func(s *entity.Session) error {
		s.Username = ""
		return nil
	})
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	return err
}

// RequireSession devuelve la identidad de la sesión o ErrUnauthenticated.
func (uc *AuthUseCase) RequireSession(ctx context.Context, sessionID string) (*dto.Identity, error) {
	s, ok := uc.sessions.Load(sessionID)
	if !ok || !s.LoggedIn() {
		return nil, domain.ErrUnauthenticated
	}
	user, err := uc.userRepo.GetByUsername(ctx, s.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &dto.Identity{Username: user.Username, Roles: user.RoleNames()}, nil
}

func (uc *AuthUseCase) dummy() []byte {
	uc.dummyOnce.Do(func() {
		uc.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), uc.cost)
	})
	return uc.dummyHash
}

// ToUserResponse adapta la entidad a la salida pública (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	roles := u.RoleNames()
	if roles == nil {
		roles = []string{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Roles:     roles,
		CreatedAt: u.CreatedAt,
	}
}
