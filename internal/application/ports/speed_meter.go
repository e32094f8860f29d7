package ports

import (
	"context"
	"time"
)

// SpeedMeasurement resultado crudo de una medición de red.
type SpeedMeasurement struct {
	DownloadBitsPerSec float64
	UploadBitsPerSec   float64
	Latency            time.Duration
}

// SpeedMeter define el puerto hacia la librería externa de medición de ancho de banda.
// El contexto debe llevar un timeout: la medición es una operación de red real que puede colgarse.
type SpeedMeter interface {
	Measure(ctx context.Context) (SpeedMeasurement, error)
}
