package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/insight"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// InsightUseCase scoring de riesgo y antigüedad de devoluciones y reclamos de garantía.
// Solo lectura.
type InsightUseCase struct {
	returnRepo repository.ReturnRepository
	claimRepo  repository.WarrantyClaimRepository
	now        func() time.Time
}

// NewInsightUseCase construye el caso de uso. Si now es nil se usa time.Now.
func NewInsightUseCase(returnRepo repository.ReturnRepository, claimRepo repository.WarrantyClaimRepository, now func() time.Time) *InsightUseCase {
	if now == nil {
		now = time.Now
	}
	return &InsightUseCase{returnRepo: returnRepo, claimRepo: claimRepo, now: now}
}

// ReturnInsight puntúa una devolución contra las demás devoluciones de la empresa.
func (uc *InsightUseCase) ReturnInsight(ctx context.Context, companyID, id string) (*dto.InsightResponse, error) {
	r, err := uc.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if r.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	peers, err := uc.returnRecords(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := insight.Score(insight.FromReturn(*r), insight.Context{Now: uc.now(), Peers: peers})
	return &out, nil
}

// WarrantyClaimInsight puntúa un reclamo contra los demás reclamos de la empresa.
func (uc *InsightUseCase) WarrantyClaimInsight(ctx context.Context, companyID, id string) (*dto.InsightResponse, error) {
	c, err := uc.claimRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	peers, err := uc.claimRecords(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := insight.Score(insight.FromWarrantyClaim(*c), insight.Context{Now: uc.now(), Peers: peers})
	return &out, nil
}

// ReturnsReport resumen de todas las devoluciones activas de la empresa.
func (uc *InsightUseCase) ReturnsReport(ctx context.Context, companyID string) (*dto.InsightReportResponse, error) {
	records, err := uc.returnRecords(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rep := insight.Summarize(insight.KindReturn, records, uc.now())
	return &rep, nil
}

// WarrantyClaimsReport resumen de todos los reclamos activos de la empresa.
func (uc *InsightUseCase) WarrantyClaimsReport(ctx context.Context, companyID string) (*dto.InsightReportResponse, error) {
	records, err := uc.claimRecords(ctx, companyID)
	if err != nil {
		return nil, err
	}
	rep := insight.Summarize(insight.KindWarrantyClaim, records, uc.now())
	return &rep, nil
}

func (uc *InsightUseCase) returnRecords(ctx context.Context, companyID string) ([]insight.Record, error) {
	list, err := uc.returnRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]insight.Record, 0, len(list))
	for _, r := range list {
		out = append(out, insight.FromReturn(*r))
	}
	return out, nil
}

func (uc *InsightUseCase) claimRecords(ctx context.Context, companyID string) ([]insight.Record, error) {
	list, err := uc.claimRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]insight.Record, 0, len(list))
	for _, c := range list {
		out = append(out, insight.FromWarrantyClaim(*c))
	}
	return out, nil
}
