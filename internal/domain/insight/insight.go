// Package insight marca devoluciones y reclamos de garantía por antigüedad y por fallas
// repetidas del mismo repuesto con el mismo proveedor.
//
// Todo el paquete es de solo lectura: recibe snapshots y nunca los modifica, por lo que
// puede ejecutarse en paralelo con cualquier escritura sobre otras órdenes.
package insight

import (
	"math"
	"strings"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecordKind tipo de registro evaluado.
type RecordKind string

const (
	KindReturn        RecordKind = "RETURN"
	KindWarrantyClaim RecordKind = "WARRANTY_CLAIM"
)

// Flags.
const (
	FlagWarrantyEligible = "WARRANTY_ELIGIBLE"
	FlagAging60          = "AGING_60"
	FlagAging30          = "AGING_30"
	FlagAging14          = "AGING_14"
	FlagAging7           = "AGING_7"
	FlagHighRiskRepeat   = "HIGH_RISK_REPEAT"
)

// Severidades.
const (
	SeverityDanger  = "danger"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// SummaryHealthy resumen cuando no hay flags.
const SummaryHealthy = "Healthy"

// RepeatWindow ventana hacia atrás en la que se buscan fallas repetidas.
const RepeatWindow = 90 * 24 * time.Hour

var eligibleStatuses = map[string]bool{
	entity.ClaimStatusApproved: true,
	entity.ClaimStatusCredited: true,
	entity.ClaimStatusPaid:     true,
}

// Line línea de un registro; solo importa el repuesto y si está activa.
type Line struct {
	PartID   string
	IsActive bool
}

// Record vista común de devoluciones y reclamos.
// ApprovedAmount: monto aprobado del reclamo o crédito de la devolución.
// SettledAmount: reembolso del reclamo o nota crédito de la devolución.
type Record struct {
	ID             string
	Kind           RecordKind
	VendorID       string
	Status         string
	CreatedAt      time.Time
	ApprovedAmount *decimal.Decimal
	SettledAmount  *decimal.Decimal
	IsActive       bool
	Lines          []Line
}

// FromReturn adapta una devolución.
func FromReturn(r entity.Return) Record {
	lines := make([]Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, Line{PartID: l.PartID, IsActive: l.IsActive})
	}
	return Record{
		ID:             r.ID,
		Kind:           KindReturn,
		VendorID:       r.VendorID,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		ApprovedAmount: r.CreditAmount,
		SettledAmount:  r.CreditMemoAmount,
		IsActive:       r.IsActive,
		Lines:          lines,
	}
}

// FromWarrantyClaim adapta un reclamo de garantía.
func FromWarrantyClaim(c entity.WarrantyClaim) Record {
	lines := make([]Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, Line{PartID: l.PartID, IsActive: l.IsActive})
	}
	return Record{
		ID:             c.ID,
		Kind:           KindWarrantyClaim,
		VendorID:       c.VendorID,
		Status:         c.Status,
		CreatedAt:      c.CreatedAt,
		ApprovedAmount: c.ApprovedAmount,
		SettledAmount:  c.ReimbursedAmount,
		IsActive:       c.IsActive,
		Lines:          lines,
	}
}

// Context datos externos del scoring: reloj inyectado y el resto de registros del mismo tipo.
type Context struct {
	Now   time.Time
	Peers []Record
}

// Insight resultado del scoring de un registro.
type Insight struct {
	RecordID string     `json:"record_id"`
	Kind     RecordKind `json:"kind"`
	AgeDays  int        `json:"age_days"`
	Flags    []string   `json:"flags"`
	Severity string     `json:"severity"`
	Summary  string     `json:"summary"`
}

// AgeDays días completos entre created y now (piso).
func AgeDays(created, now time.Time) int {
	return int(math.Floor(now.Sub(created).Hours() / 24))
}

// Score calcula flags, severidad y resumen de un registro.
func Score(rec Record, ctx Context) Insight {
	age := AgeDays(rec.CreatedAt, ctx.Now)
	flags := []string{}

	eligible := rec.ApprovedAmount != nil || eligibleStatuses[strings.ToUpper(rec.Status)]
	if eligible {
		flags = append(flags, FlagWarrantyEligible)
	}

	switch {
	case age >= 60:
		flags = append(flags, FlagAging60)
	case age >= 30:
		flags = append(flags, FlagAging30)
	case age >= 14:
		flags = append(flags, FlagAging14)
	case age >= 7:
		flags = append(flags, FlagAging7)
	}

	repeat := hasRepeatFailure(rec, ctx)
	if repeat {
		flags = append(flags, FlagHighRiskRepeat)
	}

	severity := SeverityInfo
	switch {
	case repeat || age >= 60:
		severity = SeverityDanger
	case age >= 30 || eligible:
		severity = SeverityWarning
	}

	summary := SummaryHealthy
	if len(flags) > 0 {
		summary = strings.Join(flags, ", ")
	}
	return Insight{
		RecordID: rec.ID,
		Kind:     rec.Kind,
		AgeDays:  age,
		Flags:    flags,
		Severity: severity,
		Summary:  summary,
	}
}

// hasRepeatFailure busca otro registro activo del mismo proveedor, creado dentro de la
// ventana, cuyas líneas activas compartan algún repuesto con este registro.
func hasRepeatFailure(rec Record, ctx Context) bool {
	parts := activePartIDs(rec)
	if len(parts) == 0 || rec.VendorID == "" {
		return false
	}
	since := ctx.Now.Add(-RepeatWindow)
	for _, peer := range ctx.Peers {
		if peer.ID == rec.ID || !peer.IsActive || peer.VendorID != rec.VendorID {
			continue
		}
		if peer.CreatedAt.Before(since) {
			continue
		}
		for _, l := range peer.Lines {
			if l.IsActive && parts[l.PartID] {
				return true
			}
		}
	}
	return false
}

func activePartIDs(rec Record) map[string]bool {
	out := make(map[string]bool, len(rec.Lines))
	for _, l := range rec.Lines {
		if l.IsActive && l.PartID != "" {
			out[l.PartID] = true
		}
	}
	return out
}
