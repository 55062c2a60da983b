package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo configuración por empresa (tabla company_settings).
// Los márgenes son columnas; el costeo de plasma es un documento JSONB con campos opcionales.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// GetMarkup devuelve los márgenes por nivel de la empresa.
func (r *SettingsRepo) GetMarkup(ctx context.Context, companyID string) (*entity.MarkupSettings, error) {
	s := entity.MarkupSettings{CompanyID: companyID}
	err := r.q.QueryRow(ctx, `
		SELECT retail_markup_percent, fleet_markup_percent, wholesale_markup_percent
		FROM company_settings WHERE company_id = $1`, companyID,
	).Scan(&s.RetailPercent, &s.FleetPercent, &s.WholesalePercent)
	if err != nil {
		if errNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get markup settings: %w", err)
	}
	return &s, nil
}

// GetJobCosting devuelve la configuración de costeo guardada. NULL o sin fila = nil.
func (r *SettingsRepo) GetJobCosting(ctx context.Context, companyID string) (*jobcost.Settings, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT job_costing FROM company_settings WHERE company_id = $1`, companyID).Scan(&raw)
	if err != nil {
		if errNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job costing settings: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var s jobcost.Settings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode job costing settings: %w", err)
	}
	return &s, nil
}
