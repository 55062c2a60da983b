package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/order"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// OrderPDFGenerator genera el documento imprimible de una orden (puerto de infraestructura).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// OrderDocument datos ya resueltos para imprimir una orden.
// PartNames mapea part_id -> "SKU - Nombre" para las líneas activas.
type OrderDocument struct {
	Order       dto.OrderResponse
	PartNames   map[string]string
	GeneratedAt time.Time
}

// OrderDocumentUseCase arma el PDF de una orden de venta, trabajo o compra.
type OrderDocumentUseCase struct {
	orderRepo repository.OrderRepository
	lineRepo  repository.OrderLineRepository
	partRepo  repository.PartRepository
	generator OrderPDFGenerator
	now       func() time.Time
}

// NewOrderDocumentUseCase construye el caso de uso. now nil usa time.Now.
func NewOrderDocumentUseCase(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	partRepo repository.PartRepository,
	generator OrderPDFGenerator,
	now func() time.Time,
) *OrderDocumentUseCase {
	if now == nil {
		now = time.Now
	}
	return &OrderDocumentUseCase{
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		partRepo:  partRepo,
		generator: generator,
		now:       now,
	}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound   si la orden no existe.
//   - domain.ErrForbidden  si la orden no pertenece a la empresa del token.
func (uc *OrderDocumentUseCase) Download(ctx context.Context, companyID, orderID string) ([]byte, string, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener orden: %w", err)
	}
	if o == nil {
		return nil, "", domain.ErrNotFound
	}
	if o.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	lines, err := uc.lineRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	resp := toOrderResponse(order.Snapshot{Order: *o, Lines: derefLines(lines)})

	names := make(map[string]string, len(resp.Lines))
	for _, l := range resp.Lines {
		if _, ok := names[l.PartID]; ok {
			continue
		}
		name := "Repuesto " + l.PartID
		if p, pErr := uc.partRepo.GetByID(ctx, l.PartID); pErr == nil && p != nil {
			name = p.SKU + " - " + p.Name
		}
		names[l.PartID] = name
	}

	pdfBytes, err := uc.generator.GenerateOrderPDF(ctx, OrderDocument{
		Order:       *resp,
		PartNames:   names,
		GeneratedAt: uc.now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("orden_%s.pdf", o.Number), nil
}
