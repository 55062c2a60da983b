package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de devoluciones y reclamos de garantía.
const (
	ClaimStatusOpen      = "OPEN"
	ClaimStatusSubmitted = "SUBMITTED"
	ClaimStatusApproved  = "APPROVED"
	ClaimStatusDenied    = "DENIED"
	ClaimStatusCredited  = "CREDITED"
	ClaimStatusPaid      = "PAID"
	ClaimStatusClosed    = "CLOSED"
)

// Return devolución de repuestos a un proveedor.
type Return struct {
	ID               string
	CompanyID        string
	VendorID         string
	Status           string
	CreditAmount     *decimal.Decimal
	CreditMemoAmount *decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	Lines            []ReturnLine
}

// ReturnLine línea de una devolución.
type ReturnLine struct {
	ID       string
	ReturnID string
	PartID   string
	Quantity int
	IsActive bool
}

// WarrantyClaim reclamo de garantía ante un proveedor.
type WarrantyClaim struct {
	ID               string
	CompanyID        string
	VendorID         string
	Status           string
	ApprovedAmount   *decimal.Decimal
	ReimbursedAmount *decimal.Decimal
	IsActive         bool
	CreatedAt        time.Time
	Lines            []WarrantyClaimLine
}

// WarrantyClaimLine línea de un reclamo de garantía.
type WarrantyClaimLine struct {
	ID       string
	ClaimID  string
	PartID   string
	Quantity int
	IsActive bool
}
