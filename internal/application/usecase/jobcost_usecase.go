package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// JobCostUseCase costea trabajos de corte por plasma con la configuración de la empresa.
type JobCostUseCase struct {
	settings repository.SettingsRepository
	fallback jobcost.Config
}

// NewJobCostUseCase construye el caso de uso. fallback completa los campos que la
// empresa no configuró.
func NewJobCostUseCase(settings repository.SettingsRepository, fallback jobcost.Config) *JobCostUseCase {
	return &JobCostUseCase{settings: settings, fallback: fallback}
}

// Calculate recalcula las líneas del trabajo. Las líneas con otra calc_version se
// reportan en StaleLines antes de recalcular.
func (uc *JobCostUseCase) Calculate(ctx context.Context, companyID string, in dto.CalculateJobRequest) (*dto.CalculateJobResponse, error) {
	for i, l := range in.Lines {
		if l.Qty < 0 || l.PierceCount < 0 {
			return nil, domain.NewError(domain.ErrInvalidQuantity, fmt.Sprintf("línea %d: qty y pierce_count no pueden ser negativos", i))
		}
		if l.CutLength.LessThan(decimal.Zero) {
			return nil, domain.NewError(domain.ErrInvalidAmount, fmt.Sprintf("línea %d: cut_length no puede ser negativo", i))
		}
	}
	cfg, err := uc.Config(ctx, companyID)
	if err != nil {
		return nil, err
	}

	stale := []string{}
	for i, l := range in.Lines {
		if l.CalcVersion != "" && jobcost.IsStale(l, cfg) {
			id := l.ID
			if id == "" {
				id = fmt.Sprintf("#%d", i)
			}
			stale = append(stale, id)
		}
	}

	res := jobcost.CalculateJob(in.Lines, cfg)
	return &dto.CalculateJobResponse{
		CalcVersion: cfg.CalcVersion,
		Lines:       res.Lines,
		Totals:      res.Totals,
		Warnings:    res.Warnings,
		StaleLines:  stale,
	}, nil
}

// Config resuelve la configuración de costeo de la empresa.
func (uc *JobCostUseCase) Config(ctx context.Context, companyID string) (jobcost.Config, error) {
	s, err := uc.settings.GetJobCosting(ctx, companyID)
	if err != nil {
		return jobcost.Config{}, err
	}
	if s == nil {
		s = &jobcost.Settings{}
	}
	return s.Resolve(&uc.fallback), nil
}
