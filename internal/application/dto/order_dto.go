package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddOrderLineRequest body para agregar una línea a una orden.
// UnitPrice y UnitCost son opcionales: si faltan se toman del repuesto.
type AddOrderLineRequest struct {
	PartID      string           `json:"part_id"`
	Quantity    int              `json:"quantity"`
	Description string           `json:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Warranty    bool             `json:"warranty"`
}

// UpdateOrderLineRequest body para cambiar la cantidad de una línea.
type UpdateOrderLineRequest struct {
	Quantity *int `json:"quantity"`
}

// ReceiveLineRequest body para recibir unidades contra una línea de compra.
type ReceiveLineRequest struct {
	Quantity int `json:"quantity"`
}

// OrderLineResponse línea de orden.
type OrderLineResponse struct {
	ID               string          `json:"id"`
	PartID           string          `json:"part_id"`
	Description      string          `json:"description"`
	Quantity         int             `json:"quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	CoreCharge       decimal.Decimal `json:"core_charge"`
	ExtendedAmount   decimal.Decimal `json:"extended_amount"`
	Warranty         bool            `json:"warranty"`
	CoreReturned     bool            `json:"core_returned"`
}

// OrderResponse orden con sus líneas activas.
// DerivedStatus solo aplica a compras: el estado calculado a partir de lo recibido.
type OrderResponse struct {
	ID            string              `json:"id"`
	Kind          string              `json:"kind"`
	Number        string              `json:"number"`
	CustomerID    string              `json:"customer_id,omitempty"`
	VendorID      string              `json:"vendor_id,omitempty"`
	Status        string              `json:"status"`
	DerivedStatus string              `json:"derived_status,omitempty"`
	Total         decimal.Decimal     `json:"total"`
	Notes         string              `json:"notes,omitempty"`
	InvoicedAt    *time.Time          `json:"invoiced_at,omitempty"`
	ClosedAt      *time.Time          `json:"closed_at,omitempty"`
	UpdatedAt     time.Time           `json:"updated_at"`
	Lines         []OrderLineResponse `json:"lines"`
}
