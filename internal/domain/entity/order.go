package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind tipo de orden.
type OrderKind string

const (
	OrderKindSales    OrderKind = "SALES"
	OrderKindWork     OrderKind = "WORK"
	OrderKindPurchase OrderKind = "PURCHASE"
)

// OrderStatus estado de una orden.
type OrderStatus string

const (
	OrderStatusOpen              OrderStatus = "OPEN"
	OrderStatusPartiallyReceived OrderStatus = "PARTIALLY_RECEIVED"
	OrderStatusReceived          OrderStatus = "RECEIVED"
	OrderStatusInvoiced          OrderStatus = "INVOICED"
	OrderStatusClosed            OrderStatus = "CLOSED"
)

// IsTerminal indica si el estado bloquea cualquier mutación de líneas.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusInvoiced, OrderStatusReceived, OrderStatusClosed:
		return true
	}
	return false
}

// Order cabecera de orden de venta, de trabajo o de compra.
// Total es derivado: siempre igual a la suma de los montos extendidos de sus líneas activas.
type Order struct {
	ID         string
	CompanyID  string
	Kind       OrderKind
	Number     string
	CustomerID string // ventas y trabajo
	VendorID   string // compras
	Status     OrderStatus
	Total      decimal.Decimal
	Notes      string
	InvoicedAt *time.Time
	ClosedAt   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AffectsStockOnLineChange indica si agregar/quitar líneas mueve el stock
// (ventas y trabajo sí; compras solo al recibir).
func (o Order) AffectsStockOnLineChange() bool {
	return o.Kind == OrderKindSales || o.Kind == OrderKindWork
}
