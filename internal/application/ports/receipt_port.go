package ports

import (
	"context"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
)

// ReceiptGenerator genera la representación PDF de una orden confirmada.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, storeName string, order *entity.Order) ([]byte, error)
}
