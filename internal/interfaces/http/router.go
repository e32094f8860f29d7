package http

import (
	nethttp "net/http"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"golang.org/x/time/rate"

	"github.com/nahuelmangano/speedtest/internal/application/auth"
	"github.com/nahuelmangano/speedtest/internal/application/cart"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/application/speedtest"
	"github.com/nahuelmangano/speedtest/internal/application/usecase"
	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/storage"
	"github.com/nahuelmangano/speedtest/pkg/logger"
	"github.com/nahuelmangano/speedtest/web"
)

// RouterDeps dependencias para el router. Se construyen una vez en main y se inyectan acá.
type RouterDeps struct {
	AppName     string
	Log         *logger.Logger
	Sessions    ports.SessionStore
	Session     SessionConfig
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	CartUC      *cart.UseCase
	SpeedTestUC *speedtest.UseCase
	UploadDir   string
	BodyLimit   int // bytes; 0 = default de Fiber (4 MiB)
	CORSOrigins []string
	SwaggerFile string // vacío = sin /docs
	// Límites por IP; cero usa los valores por defecto.
	LoginRate     rate.Limit
	SpeedTestRate rate.Limit
}

// sessionCounter lo implementan los stores que saben cuántas sesiones tienen vivas.
type sessionCounter interface {
	Len() int
}

// NewApp crea la aplicación Fiber con vistas, middlewares globales y todas las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	engine := html.NewFileSystem(nethttp.FS(web.Templates()), ".html")

	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		Views:        engine,
		BodyLimit:    deps.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 120, // /run-speedtest tarda
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogging(deps.Log))

	if deps.SwaggerFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: deps.SwaggerFile,
			Path:     "docs",
			Title:    deps.AppName + " API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		out := fiber.Map{"status": "ok", "service": deps.AppName}
		if counter, ok := deps.Sessions.(sessionCounter); ok {
			out["sessions"] = counter.Len()
		}
		return c.JSON(out)
	})
	app.Use("/static", filesystem.New(filesystem.Config{Root: nethttp.FS(web.Static())}))
	if deps.UploadDir != "" {
		app.Static(storage.URLPrefix, deps.UploadDir)
	}

	Router(app, deps)
	return app
}

// Router registra las rutas del sitio.
func Router(app *fiber.App, deps RouterDeps) {
	loginRate, speedRate := deps.LoginRate, deps.SpeedTestRate
	if loginRate == 0 {
		loginRate = rate.Every(6 * time.Second)
	}
	if speedRate == 0 {
		speedRate = rate.Every(30 * time.Second)
	}

	// API JSON y speed test: sin sesión.
	speedHandler := NewSpeedTestHandler(deps.SpeedTestUC, deps.Log)
	app.Get("/run-speedtest",
		CORS(deps.CORSOrigins),
		NewRateLimiter(speedRate, 2).Middleware(),
		speedHandler.Run,
	)

	v := newViews(deps.Sessions)
	productHandler := NewProductHandler(deps.ProductUC, deps.CategoryUC, v)
	api := app.Group("/api")
	api.Get("/productos", productHandler.List)
	api.Get("/productos/:id", productHandler.GetByID)

	// Todo lo que sigue usa la sesión de la cookie.
	site := app.Group("/", SessionMiddleware(deps.Sessions, deps.Session, deps.Log))

	pages := NewPageHandler(v)
	site.Get("/", pages.Index)
	site.Get("/speedtest", pages.SpeedTest)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, v)
	site.Get("/login", authHandler.LoginForm)
	site.Post("/login", NewRateLimiter(loginRate, 5).Middleware(), authHandler.Login)
	site.Get("/register", authHandler.RegisterForm)
	site.Post("/register", authHandler.Register)
	site.Get("/logout", authHandler.Logout)

	// Catálogo público
	site.Get("/tienda", productHandler.Store)
	site.Get("/producto/:id", productHandler.Detail)

	// Carrito y compras (público: se admite compra como invitado)
	cartHandler := NewCartHandler(deps.CartUC, v)
	site.Get("/agregar_carrito/:id", cartHandler.Add)
	site.Get("/comprar/:id", cartHandler.Buy)
	site.Get("/carrito", cartHandler.Show)
	site.Post("/carrito/comprar", cartHandler.BuyCart)
	site.Get("/pedido/:id/recibo", cartHandler.Receipt)

	// Rutas protegidas (requieren sesión)
	authed := requireSession(deps.AuthUC, v)
	dashboardHandler := NewDashboardHandler(deps.UserUC, deps.ProductUC, v)
	site.Get("/dashboard", authed, dashboardHandler.Show)
	site.Get("/agregar_producto", authed, productHandler.NewForm)
	site.Post("/agregar_producto", authed, productHandler.Create)

	// Solo admin
	adminOnly := requireRole(v, entity.RoleAdmin)
	categoryHandler := NewCategoryHandler(deps.CategoryUC, v)
	site.Get("/agregar_categoria", authed, adminOnly, categoryHandler.NewForm)
	site.Post("/agregar_categoria", authed, adminOnly, categoryHandler.Create)
}
