package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plasmaLine(id string) entity.PlasmaJobLine {
	return entity.PlasmaJobLine{
		ID:           id,
		MaterialType: "mild_steel",
		Thickness:    "0.25",
		CutLength:    decimal.NewFromInt(100),
		PierceCount:  4,
		Qty:          2,
	}
}

func TestJobCostUseCase_ConfigDeLaEmpresaGana(t *testing.T) {
	s := newMemStore()
	markup := decimal.NewFromInt(50)
	s.jobCosting = &jobcost.Settings{MarkupPercent: &markup, CalcVersion: "plasma-v2"}
	fallback := jobcost.DefaultConfig()
	uc := usecase.NewJobCostUseCase(memSettingsRepo{s}, fallback)

	cfg, err := uc.Config(context.Background(), companyA)
	require.NoError(t, err)
	assert.True(t, cfg.MarkupPercent.Equal(markup))
	assert.True(t, cfg.MachineRatePerMinute.Equal(jobcost.DefaultMachineRatePerMinute))
	assert.Equal(t, "plasma-v2", cfg.CalcVersion)
}

func TestJobCostUseCase_CalculaYReportaVersionVieja(t *testing.T) {
	s := newMemStore()
	uc := usecase.NewJobCostUseCase(memSettingsRepo{s}, jobcost.DefaultConfig())

	old := plasmaLine("a")
	old.CalcVersion = "plasma-v0"
	fresh := plasmaLine("b")

	out, err := uc.Calculate(context.Background(), companyA, dto.CalculateJobRequest{Lines: []entity.PlasmaJobLine{old, fresh}})
	require.NoError(t, err)
	assert.Equal(t, jobcost.DefaultCalcVersion, out.CalcVersion)
	assert.Equal(t, []string{"a"}, out.StaleLines)
	require.Len(t, out.Lines, 2)
	for _, l := range out.Lines {
		assert.Equal(t, jobcost.DefaultCalcVersion, l.CalcVersion)
	}
	// Tablas vacías: cada línea advierte que no hay velocidad de corte.
	codes := map[string]int{}
	for _, w := range out.Warnings {
		codes[w.Code]++
	}
	assert.Equal(t, 2, codes[jobcost.WarnSpeedLookupMissing])
}

func TestJobCostUseCase_RechazaNegativos(t *testing.T) {
	uc := usecase.NewJobCostUseCase(memSettingsRepo{newMemStore()}, jobcost.DefaultConfig())

	bad := plasmaLine("x")
	bad.Qty = -1
	_, err := uc.Calculate(context.Background(), companyA, dto.CalculateJobRequest{Lines: []entity.PlasmaJobLine{bad}})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	bad = plasmaLine("y")
	bad.CutLength = decimal.NewFromInt(-5)
	_, err = uc.Calculate(context.Background(), companyA, dto.CalculateJobRequest{Lines: []entity.PlasmaJobLine{bad}})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
