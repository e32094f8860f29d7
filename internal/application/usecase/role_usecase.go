package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/domain/repository"
)

// RoleTxRunner ejecuta fn en una transacción con repos de usuarios y roles atados a ella.
type RoleTxRunner interface {
	RunAuth(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		roleRepo repository.RoleRepository,
	) error) error
}

// RoleUseCase registro de roles.
type RoleUseCase struct {
	repo repository.RoleRepository
	tx   RoleTxRunner
}

// NewRoleUseCase construye el caso de uso.
func NewRoleUseCase(repo repository.RoleRepository, tx RoleTxRunner) *RoleUseCase {
	return &RoleUseCase{repo: repo, tx: tx}
}

// EnsureRole obtiene o crea el rol name.
func (uc *RoleUseCase) EnsureRole(ctx context.Context, name string) (*entity.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrValidation
	}
	return uc.repo.Ensure(ctx, name)
}

// SeedDefaults crea los roles por defecto que falten. Se llama una vez al arrancar.
func (uc *RoleUseCase) SeedDefaults(ctx context.Context) error {
	for _, name := range entity.DefaultRoles {
		if _, err := uc.repo.Ensure(ctx, name); err != nil {
			return fmt.Errorf("seed rol %s: %w", name, err)
		}
	}
	return nil
}

// Grant asocia el rol name (creándolo si falta) al usuario userID en una sola transacción.
// Usuario inexistente es ErrNotFound; repetir la asignación no es error.
func (uc *RoleUseCase) Grant(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrValidation
	}
	return uc.tx.RunAuth(ctx, func(userRepo repository.UserRepository, roleRepo repository.RoleRepository) error {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
		}
		if user.HasRole(name) {
			return nil
		}
		role, err := roleRepo.Ensure(ctx, name)
		if err != nil {
			return err
		}
		return roleRepo.Assign(ctx, user.ID, role.ID)
	})
}
