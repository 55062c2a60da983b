package dto

import "github.com/jhoicas/Taller-api/internal/domain/insight"

// InsightResponse scoring de una devolución o reclamo.
type InsightResponse = insight.Insight

// InsightReportResponse resumen agregado de devoluciones o reclamos de la empresa.
type InsightReportResponse = insight.Report
