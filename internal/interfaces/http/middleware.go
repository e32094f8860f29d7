package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/pkg/logger"
)

// RequestLogging registra cada request al terminar: método, ruta, status, duración e id.
func RequestLogging(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		requestID, _ := c.Locals("requestid").(string)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error().Err(err)
		}
		ev.Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}

// RateLimiter limita requests por IP con un token bucket por cliente.
// Los buckets de IPs inactivas se descartan solos.
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter crea el limitador: r eventos por segundo con ráfagas de b.
func NewRateLimiter(r rate.Limit, b int) *RateLimiter {
	return &RateLimiter{
		limit:    r,
		burst:    b,
		limiters: expirable.NewLRU[string, *rate.Limiter](10000, nil, 10*time.Minute),
	}
}

func (rl *RateLimiter) get(key string) *rate.Limiter {
	if l, ok := rl.limiters.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters.Add(key, l)
	return l
}

// Middleware responde 429 cuando la IP superó su cuota.
func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.get(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, intente más tarde",
			})
		}
		return c.Next()
	}
}

// CORS habilita el acceso desde los orígenes configurados (solo lectura).
func CORS(origins []string) fiber.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{fiber.MethodGet, fiber.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})
	return adaptor.HTTPMiddleware(c.Handler)
}

// ErrorHandler traduce errores no manejados a JSON y registra los 5xx.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "error interno"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no manejado")
		}
		return c.Status(code).JSON(dto.ErrorResponse{Code: errorCode(code), Message: msg})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "BAD_REQUEST"
	}
}
