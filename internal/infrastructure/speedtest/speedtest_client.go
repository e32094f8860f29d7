// Package speedtest adapta github.com/showwin/speedtest-go al puerto ports.SpeedMeter.
package speedtest

import (
	"context"
	"fmt"

	"github.com/showwin/speedtest-go/speedtest"

	"github.com/nahuelmangano/speedtest/internal/application/ports"
)

var _ ports.SpeedMeter = (*Client)(nil)

// Client mide contra el servidor speedtest.net más cercano.
type Client struct {
	st *speedtest.Speedtest
}

// NewClient construye el cliente.
func NewClient() *Client {
	return &Client{st: speedtest.New()}
}

// Measure obtiene la lista de servidores, elige el más cercano y ejecuta ping, bajada y subida.
// Respeta la cancelación de ctx en cada etapa.
func (c *Client) Measure(ctx context.Context) (ports.SpeedMeasurement, error) {
	servers, err := c.st.FetchServerListContext(ctx)
	if err != nil {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: lista de servidores: %w", err)
	}
	targets, err := servers.FindServer(nil)
	if err != nil {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: elegir servidor: %w", err)
	}
	if len(targets) == 0 {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: sin servidores disponibles")
	}
	server := targets[0]
	defer server.Context.Reset()

	if err := server.PingTestContext(ctx, nil); err != nil {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: ping: %w", err)
	}
	if err := server.DownloadTestContext(ctx); err != nil {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: bajada: %w", err)
	}
	if err := server.UploadTestContext(ctx); err != nil {
		return ports.SpeedMeasurement{}, fmt.Errorf("speedtest: subida: %w", err)
	}

	// DLSpeed/ULSpeed están en bytes por segundo.
	return ports.SpeedMeasurement{
		DownloadBitsPerSec: float64(server.DLSpeed) * 8,
		UploadBitsPerSec:   float64(server.ULSpeed) * 8,
		Latency:            server.Latency,
	}, nil
}
