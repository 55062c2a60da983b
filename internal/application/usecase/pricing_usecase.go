package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// PricingUseCase cotiza repuestos por nivel de precio con los márgenes de la empresa.
type PricingUseCase struct {
	parts    repository.PartRepository
	settings repository.SettingsRepository
	fallback entity.MarkupSettings
}

// NewPricingUseCase construye el caso de uso. fallback se usa cuando la empresa
// no tiene márgenes guardados.
func NewPricingUseCase(parts repository.PartRepository, settings repository.SettingsRepository, fallback entity.MarkupSettings) *PricingUseCase {
	return &PricingUseCase{parts: parts, settings: settings, fallback: fallback}
}

// Quote devuelve el precio del repuesto para level (RETAIL si viene vacío).
func (uc *PricingUseCase) Quote(ctx context.Context, companyID, partID, level string) (*dto.PriceQuoteResponse, error) {
	part, markup, err := uc.load(ctx, companyID, partID)
	if err != nil {
		return nil, err
	}
	lvl := entity.PriceLevelRetail
	if level != "" {
		lvl = entity.PriceLevel(strings.ToUpper(level))
	}
	out := toQuoteResponse(part.ID, pricing.PriceForLevel(*part, *markup, lvl))
	return &out, nil
}

// PriceSheet devuelve los precios del repuesto en todos los niveles.
func (uc *PricingUseCase) PriceSheet(ctx context.Context, companyID, partID string) (*dto.PriceSheetResponse, error) {
	part, markup, err := uc.load(ctx, companyID, partID)
	if err != nil {
		return nil, err
	}
	out := &dto.PriceSheetResponse{PartID: part.ID, SKU: part.SKU, Name: part.Name}
	for _, q := range pricing.PriceAllLevels(*part, *markup) {
		out.Quotes = append(out.Quotes, toQuoteResponse(part.ID, q))
	}
	return out, nil
}

func (uc *PricingUseCase) load(ctx context.Context, companyID, partID string) (*entity.Part, *entity.MarkupSettings, error) {
	part, err := uc.parts.GetByID(ctx, partID)
	if err != nil {
		return nil, nil, err
	}
	if part == nil {
		return nil, nil, domain.ErrNotFound
	}
	if part.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	markup, err := uc.settings.GetMarkup(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if markup == nil {
		m := uc.fallback
		m.CompanyID = companyID
		markup = &m
	}
	return part, markup, nil
}

func toQuoteResponse(partID string, q pricing.Quote) dto.PriceQuoteResponse {
	warnings := q.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return dto.PriceQuoteResponse{
		PartID:        partID,
		Level:         string(q.Level),
		Price:         q.Price,
		CostBasis:     q.Basis,
		BasisSource:   string(q.BasisSource),
		MarkupPercent: q.MarkupPercent,
		Warnings:      warnings,
	}
}
