package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nahuelmangano/speedtest/docs"
	"github.com/nahuelmangano/speedtest/internal/app"
	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/cart"
	appspeedtest "github.com/nahuelmangano/speedtest/internal/application/speedtest"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	infrapdf "github.com/nahuelmangano/speedtest/internal/infrastructure/pdf"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/session"
	infraspeedtest "github.com/nahuelmangano/speedtest/internal/infrastructure/speedtest"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/storage"
	httpRouter "github.com/nahuelmangano/speedtest/internal/interfaces/http"
	"github.com/nahuelmangano/speedtest/pkg/config"
	"github.com/nahuelmangano/speedtest/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")
	if cfg.Session.SecretKey == config.DefaultSecretKey && !cfg.App.IsDevelopment() {
		log.Warn().Msg("SECRET_KEY no definido: se usa la clave de desarrollo")
	}

	ctx := context.Background()
	repos, err := app.OpenRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.Close()

	roleUC := usecase.NewRoleUseCase(repos.Roles, repos.Tx)
	if err := roleUC.SeedDefaults(ctx); err != nil {
		log.Fatal().Err(err).Msg("sembrar roles")
	}

	sessions := session.NewStore(cfg.Session.MaxEntries, cfg.Session.TTL)
	images := storage.NewLocalImageStorage(cfg.Upload.Dir, cfg.Upload.MaxBytes)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Roles, repos.Tx, sessions, auth.Config{})
	userUC := usecase.NewUserUseCase(repos.Users)
	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Tx, images)
	categoryUC := usecase.NewCategoryUseCase(repos.Categories)
	cartUC := cart.NewUseCase(repos.Products, repos.Orders, repos.Tx, sessions,
		infrapdf.NewMarotoReceiptGenerator(), cfg.App.Name)
	speedUC := appspeedtest.NewUseCase(infraspeedtest.NewClient(), cfg.SpeedTest.Timeout)

	docs.SwaggerInfo.Title = cfg.App.Name + " API"
	swagger := ""
	if _, err := os.Stat(swaggerFile); err == nil {
		swagger = swaggerFile
	}

	server := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:  cfg.App.Name,
		Log:      log,
		Sessions: sessions,
		Session: httpRouter.SessionConfig{
			Secret: cfg.Session.SecretKey,
			TTL:    cfg.Session.TTL,
			Issuer: cfg.App.Name,
			Secure: !cfg.App.IsDevelopment(),
		},
		AuthUC:      authUC,
		UserUC:      userUC,
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		CartUC:      cartUC,
		SpeedTestUC: speedUC,
		UploadDir:   images.Dir(),
		BodyLimit:   int(cfg.Upload.MaxBytes) + 1<<20, // imagen + campos del formulario
		CORSOrigins: cfg.HTTP.CORSOrigins,
		SwaggerFile: swagger,
	})

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
