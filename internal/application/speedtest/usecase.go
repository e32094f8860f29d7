package speedtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nahuelmangano/speedtest/internal/application/dto"
	"github.com/nahuelmangano/speedtest/internal/application/ports"
	"github.com/nahuelmangano/speedtest/internal/domain"
)

// UseCase puente hacia la medición externa de ancho de banda.
// Una sola medición a la vez: correr dos en paralelo satura el enlace y falsea ambos resultados.
type UseCase struct {
	meter   ports.SpeedMeter
	timeout time.Duration
	mu      sync.Mutex
}

// NewUseCase construye el caso de uso; timeout acota cada medición.
func NewUseCase(meter ports.SpeedMeter, timeout time.Duration) *UseCase {
	return &UseCase{meter: meter, timeout: timeout}
}

// Run mide una vez (sin reintentos) y devuelve bajada y subida en Mbit/s con 2 decimales y ping en ms.
// Cualquier fallo, incluido el timeout, se devuelve envuelto en ErrExternalService.
func (uc *UseCase) Run(ctx context.Context) (*dto.SpeedTestResponse, error) {
	if !uc.mu.TryLock() {
		return nil, fmt.Errorf("%w: ya hay una medición en curso", domain.ErrExternalService)
	}
	defer uc.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	m, err := uc.meter.Measure(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, err)
	}
	return &dto.SpeedTestResponse{
		Download: megabits(m.DownloadBitsPerSec),
		Upload:   megabits(m.UploadBitsPerSec),
		Ping:     float64(m.Latency) / float64(time.Millisecond),
	}, nil
}

func megabits(bitsPerSec float64) float64 {
	return decimal.NewFromFloat(bitsPerSec).Shift(-6).Round(2).InexactFloat64()
}
