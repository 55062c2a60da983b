package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/domain"
)

type captureGenerator struct {
	doc usecase.OrderDocument
	err error
}

func (g *captureGenerator) GenerateOrderPDF(_ context.Context, doc usecase.OrderDocument) ([]byte, error) {
	g.doc = doc
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-1.3"), nil
}

func TestOrderDocumentUseCase_Download(t *testing.T) {
	s := seedOrders()
	p2 := s.parts["p2"]
	p2.SKU = "DSC-1"
	s.parts["p2"] = p2
	gen := &captureGenerator{}
	now := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	uc := usecase.NewOrderDocumentUseCase(memOrderRepo{s}, memLineRepo{s}, memPartRepo{s}, gen, func() time.Time { return now })

	out, name, err := uc.Download(context.Background(), companyA, "po1")
	require.NoError(t, err)
	assert.Equal(t, "orden_PO-1.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), out)
	assert.Equal(t, now, gen.doc.GeneratedAt)
	assert.Equal(t, "DSC-1 - Disco", gen.doc.PartNames["p2"])
	require.Len(t, gen.doc.Order.Lines, 1)
	assert.Equal(t, "OPEN", gen.doc.Order.DerivedStatus)
}

func TestOrderDocumentUseCase_Errores(t *testing.T) {
	s := seedOrders()
	uc := usecase.NewOrderDocumentUseCase(memOrderRepo{s}, memLineRepo{s}, memPartRepo{s}, &captureGenerator{}, nil)

	_, _, err := uc.Download(context.Background(), companyA, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = uc.Download(context.Background(), "company-b", "so1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	boom := errors.New("sin fuentes")
	uc = usecase.NewOrderDocumentUseCase(memOrderRepo{s}, memLineRepo{s}, memPartRepo{s}, &captureGenerator{err: boom}, nil)
	_, _, err = uc.Download(context.Background(), companyA, "so1")
	assert.ErrorIs(t, err, boom)
}
