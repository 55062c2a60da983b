package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivingEntry registro de auditoría de una recepción contra una línea de orden de compra.
type ReceivingEntry struct {
	ID         string
	OrderID    string
	LineID     string
	PartID     string
	VendorID   string
	Quantity   int
	UnitCost   decimal.Decimal
	ReceivedAt time.Time
}
