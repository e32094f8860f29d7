package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahuelmangano/speedtest/internal/domain/entity"
	"github.com/nahuelmangano/speedtest/internal/infrastructure/pdf"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0,00",
		"9.99":       "9,99",
		"1234":       "1.234,00",
		"1234567.5":  "1.234.567,50",
		"-2500.25":   "-2.500,25",
		"100000.006": "100.000,01",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	order := &entity.Order{
		ID:       "3f2b8c1e-0000-4000-8000-000000000001",
		Username: "alice",
		Total:    decimal.RequireFromString("29.97"),
		Items: []entity.OrderItem{
			{ProductID: "p1", ProductName: "Widget", Quantity: 3, UnitPrice: decimal.RequireFromString("9.99")},
		},
		CreatedAt: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
	}

	out, err := pdf.NewMarotoReceiptGenerator().GenerateReceiptPDF(context.Background(), "Portfolio Store", order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un PDF")
}
