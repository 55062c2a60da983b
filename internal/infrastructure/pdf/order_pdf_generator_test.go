package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", formatMoney("0.00"))
	assert.Equal(t, "$999.99", formatMoney("999.99"))
	assert.Equal(t, "$25,000.50", formatMoney("25000.50"))
	assert.Equal(t, "$1,000,000.00", formatMoney("1000000.00"))
	assert.Equal(t, "-$1,234.00", formatMoney("-1234.00"))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "ORDEN DE COMPRA", title("PURCHASE"))
	assert.Equal(t, "ORDEN", title("OTRO"))
}

func TestGenerateOrderPDF_DevuelvePDF(t *testing.T) {
	doc := usecase.OrderDocument{
		Order: dto.OrderResponse{
			ID: "so1", Kind: "SALES", Number: "SO-1", CustomerID: "c1", Status: "OPEN",
			Total: decimal.RequireFromString("145.00"),
			Lines: []dto.OrderLineResponse{{
				ID: "l1", PartID: "p1", Quantity: 2,
				UnitPrice:      decimal.RequireFromString("52.50"),
				CoreCharge:     decimal.RequireFromString("20"),
				ExtendedAmount: decimal.RequireFromString("145.00"),
			}},
		},
		PartNames:   map[string]string{"p1": "ALT-1 - Alternador"},
		GeneratedAt: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
	out, err := NewMarotoOrderPDF("Taller Central").GenerateOrderPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}
