// seed prepara la base: aplica migraciones, siembra los roles por defecto y opcionalmente
// crea un administrador y un catálogo de demostración.
//
// Uso: go run ./cmd/seed --admin-user admin --admin-password secreto --demo
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/nahuelmangano/speedtest/internal/app"
	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/session"
	"github.com/nahuelmangano/speedtest/pkg/config"
	"github.com/nahuelmangano/speedtest/pkg/logger"
)

func main() {
	adminUser := pflag.String("admin-user", "", "usuario administrador a crear (vacío = no crear)")
	adminPassword := pflag.String("admin-password", "", "contraseña del administrador")
	demo := pflag.Bool("demo", false, "cargar categorías y productos de ejemplo")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.DB.Driver == "memory" {
		log.Warn().Msg("DB_DRIVER=memory: los datos sembrados se pierden al terminar")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	repos, err := app.OpenRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.Close()

	roleUC := usecase.NewRoleUseCase(repos.Roles, repos.Tx)
	if err := roleUC.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles")
	}
	log.Info().Strs("roles", entity.DefaultRoles).Msg("roles listos")

	if *adminUser != "" {
		if err := seedAdmin(ctx, repos, roleUC, *adminUser, *adminPassword); err != nil {
			log.Fatal().Err(err).Msg("crear administrador")
		}
		log.Info().Str("username", *adminUser).Msg("administrador listo")
	}

	if *demo {
		n, err := seedDemo(ctx, repos)
		if err != nil {
			log.Fatal().Err(err).Msg("catálogo de demostración")
		}
		log.Info().Int("productos", n).Msg("catálogo de demostración cargado")
	}
}

// seedAdmin registra el usuario (o reutiliza el existente) y le asigna el rol admin.
func seedAdmin(ctx context.Context, repos *app.Repositories, roleUC *usecase.RoleUseCase, username, password string) error {
	if password == "" {
		return fmt.Errorf("--admin-password es obligatorio junto a --admin-user")
	}
	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, repos.Tx, session.NewStore(1, time.Minute), auth.Config{})

	var userID string
	created, err := authUC.Register(ctx, dto.RegisterRequest{Username: username, Password: password})
	switch {
	case err == nil:
		userID = created.ID
	case errors.Is(err, domain.ErrDuplicateUsername):
		existing, err := repos.Users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing == nil {
			return domain.ErrNotFound
		}
		userID = existing.ID
	default:
		return err
	}
	return roleUC.Grant(ctx, userID, entity.RoleAdmin)
}

type demoProduct struct {
	name, price, stock, color, description string
	category                               string
}

var demoCatalog = []demoProduct{
	{"Router Wi-Fi 6", "89.90", "12", "negro", "Doble banda, 4 antenas.", "Redes"},
	{"Cable UTP Cat6 (5 m)", "6.50", "80", "azul", "", "Redes"},
	{"Switch 8 puertos", "34.99", "20", "", "Gigabit, sin administración.", "Redes"},
	{"Teclado mecánico", "59.00", "8", "gris", "Switches marrones.", "Periféricos"},
	{"Mouse inalámbrico", "19.99", "25", "negro", "", "Periféricos"},
}

// seedDemo crea las categorías y productos de demostración. Devuelve la cantidad de productos.
func seedDemo(ctx context.Context, repos *app.Repositories) (int, error) {
	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Tx, nil)

	existing, err := categoryUC.List(ctx)
	if err != nil {
		return 0, err
	}
	ids := make(map[string]string, len(existing))
	for _, c := range existing {
		ids[c.Name] = c.ID
	}

	for _, p := range demoCatalog {
		catID, ok := ids[p.category]
		if !ok {
			c, err := categoryUC.Create(ctx, dto.CreateCategoryRequest{Name: p.category})
			if err != nil {
				return 0, err
			}
			catID = c.ID
			ids[p.category] = catID
		}
		_, err := productUC.Create(ctx, dto.CreateProductRequest{
			Name:        p.name,
			Price:       p.price,
			Stock:       p.stock,
			Color:       p.color,
			Description: p.description,
			CategoryID:  catID,
		}, nil)
		if err != nil {
			return 0, fmt.Errorf("producto %s: %w", p.name, err)
		}
	}
	return len(demoCatalog), nil
}
