package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/speedtest"
	"github.com/nahuelmangano/speedtest/pkg/logger"
)

// SpeedTestHandler expone la medición de ancho de banda como JSON.
type SpeedTestHandler struct {
	uc  *speedtest.UseCase
	log *logger.Logger
}

// NewSpeedTestHandler construye el handler.
func NewSpeedTestHandler(uc *speedtest.UseCase, log *logger.Logger) *SpeedTestHandler {
	return &SpeedTestHandler{uc: uc, log: log}
}

// Run godoc
// @Summary      Ejecutar test de velocidad
// @Description  Mide bajada y subida (Mbit/s, 2 decimales) y ping (ms) contra el servidor más cercano.
// @Tags         speedtest
// @Produce      json
// @Success      200  {object}  dto.SpeedTestResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.SpeedTestError
// @Router       /run-speedtest [get]
func (h *SpeedTestHandler) Run(c *fiber.Ctx) error {
	out, err := h.uc.Run(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("speedtest")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SpeedTestError{
			Error: "No se pudo completar el test de velocidad.",
		})
	}
	return c.JSON(out)
}
