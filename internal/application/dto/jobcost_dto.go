package dto

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
)

// CalculateJobRequest líneas de un trabajo de plasma a costear.
type CalculateJobRequest struct {
	Lines []entity.PlasmaJobLine `json:"lines"`
}

// CalculateJobResponse líneas recalculadas, totales y advertencias.
// StaleLines lista las líneas de entrada calculadas con otra versión de cálculo.
type CalculateJobResponse struct {
	CalcVersion string                 `json:"calc_version"`
	Lines       []entity.PlasmaJobLine `json:"lines"`
	Totals      jobcost.Totals         `json:"totals"`
	Warnings    []jobcost.Warning      `json:"warnings"`
	StaleLines  []string               `json:"stale_lines"`
}
