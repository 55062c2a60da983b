package insight

import (
	"time"

	"github.com/jhoicas/Taller-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Report resumen agregado de un conjunto de registros activos.
type Report struct {
	Kind          RecordKind      `json:"kind"`
	Total         int             `json:"total"`
	BySeverity    map[string]int  `json:"by_severity"`
	ByFlag        map[string]int  `json:"by_flag"`
	ApprovedTotal decimal.Decimal `json:"approved_total"`
	SettledTotal  decimal.Decimal `json:"settled_total"`
	OldestAgeDays int             `json:"oldest_age_days"`
	Insights      []Insight       `json:"insights"`
}

// Summarize puntúa cada registro activo contra el conjunto completo y agrega los resultados.
// Los registros inactivos no se reportan, pero tampoco cuentan como pares.
func Summarize(kind RecordKind, records []Record, now time.Time) Report {
	rep := Report{
		Kind: kind,
		BySeverity: map[string]int{
			SeverityDanger:  0,
			SeverityWarning: 0,
			SeverityInfo:    0,
		},
		ByFlag:   map[string]int{},
		Insights: []Insight{},
	}
	ctx := Context{Now: now, Peers: records}
	var approved, settled decimal.Decimal
	for _, rec := range records {
		if !rec.IsActive {
			continue
		}
		in := Score(rec, ctx)
		rep.Insights = append(rep.Insights, in)
		rep.Total++
		rep.BySeverity[in.Severity]++
		for _, f := range in.Flags {
			rep.ByFlag[f]++
		}
		if in.AgeDays > rep.OldestAgeDays {
			rep.OldestAgeDays = in.AgeDays
		}
		if rec.ApprovedAmount != nil {
			approved = approved.Add(*rec.ApprovedAmount)
		}
		if rec.SettledAmount != nil {
			settled = settled.Add(*rec.SettledAmount)
		}
	}
	rep.ApprovedTotal = money.Round2(approved)
	rep.SettledTotal = money.Round2(settled)
	return rep
}
