package repository

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
)

// SettingsRepository configuración por empresa. Devuelve (nil, nil) si la empresa no
// tiene la configuración guardada; el caller aplica los valores por defecto.
type SettingsRepository interface {
	GetMarkup(ctx context.Context, companyID string) (*entity.MarkupSettings, error)
	GetJobCosting(ctx context.Context, companyID string) (*jobcost.Settings, error)
}
