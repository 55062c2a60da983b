package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/money"
	"github.com/jhoicas/Taller-api/internal/domain/order"
	"github.com/jhoicas/Taller-api/internal/domain/orderstatus"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// OrderTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Un error devuelto por fn deshace todo.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		partRepo repository.PartRepository,
		movRepo repository.InventoryMovementRepository,
		receivingRepo repository.ReceivingRepository,
	) error) error
}

// OrderUseCase mutaciones de líneas de órdenes de venta, trabajo y compra.
// Cada mutación corre en una transacción que bloquea la orden (SELECT FOR UPDATE) y los
// repuestos involucrados, invoca el motor y persiste el snapshot resultante.
type OrderUseCase struct {
	txRunner  OrderTxRunner
	orderRepo repository.OrderRepository
	lineRepo  repository.OrderLineRepository
	engine    *order.Engine
	log       *logger.Logger
}

// NewOrderUseCase construye el caso de uso con reloj del sistema e IDs UUID.
func NewOrderUseCase(
	txRunner OrderTxRunner,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		engine:    order.NewEngine(time.Now, uuid.NewString),
		log:       log,
	}
}

// Get devuelve la orden con sus líneas activas.
func (uc *OrderUseCase) Get(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	o, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.lineRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order.Snapshot{Order: *o, Lines: derefLines(lines)}), nil
}

// AddLine agrega una línea a la orden.
func (uc *OrderUseCase) AddLine(ctx context.Context, companyID, orderID string, in dto.AddOrderLineRequest) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "add_line", []string{in.PartID}, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.AddLine(s, order.AddLineInput{
			PartID:      in.PartID,
			Quantity:    in.Quantity,
			Description: in.Description,
			UnitPrice:   in.UnitPrice,
			UnitCost:    in.UnitCost,
			Warranty:    in.Warranty,
		})
	})
}

// UpdateLineQuantity cambia la cantidad de una línea.
func (uc *OrderUseCase) UpdateLineQuantity(ctx context.Context, companyID, orderID, lineID string, qty int) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "update_quantity", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.UpdateQuantity(s, lineID, qty)
	})
}

// RemoveLine desactiva una línea.
func (uc *OrderUseCase) RemoveLine(ctx context.Context, companyID, orderID, lineID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "remove_line", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.RemoveLine(s, lineID)
	})
}

// ToggleWarranty invierte el flag de garantía de una línea.
func (uc *OrderUseCase) ToggleWarranty(ctx context.Context, companyID, orderID, lineID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "toggle_warranty", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.ToggleWarranty(s, lineID)
	})
}

// ToggleCoreReturned invierte el flag de casco devuelto de una línea.
func (uc *OrderUseCase) ToggleCoreReturned(ctx context.Context, companyID, orderID, lineID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "toggle_core_returned", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.ToggleCoreReturned(s, lineID)
	})
}

// Receive recibe qty unidades contra una línea de compra.
func (uc *OrderUseCase) Receive(ctx context.Context, companyID, orderID, lineID string, qty int) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "receive", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.Receive(s, lineID, qty)
	})
}

// Invoice factura una orden de venta o de trabajo.
func (uc *OrderUseCase) Invoice(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "invoice", nil, uc.engine.Invoice)
}

// Close cierra una orden de compra o de trabajo.
func (uc *OrderUseCase) Close(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "close", nil, uc.engine.Close)
}

// Recalculate recalcula y guarda el total de la orden.
func (uc *OrderUseCase) Recalculate(ctx context.Context, companyID, orderID string) (*dto.OrderResponse, error) {
	return uc.mutate(ctx, companyID, orderID, "recalculate", nil, func(s order.Snapshot) (order.Snapshot, error) {
		return uc.engine.Recalculate(s), nil
	})
}

// mutate carga el snapshot bajo bloqueo, aplica op y persiste el resultado en la misma tx.
// extraParts son repuestos que la operación necesita y que aún no están en las líneas.
func (uc *OrderUseCase) mutate(
	ctx context.Context,
	companyID, orderID, opName string,
	extraParts []string,
	op func(order.Snapshot) (order.Snapshot, error),
) (*dto.OrderResponse, error) {
	var result order.Snapshot
	err := uc.txRunner.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		lineRepo repository.OrderLineRepository,
		partRepo repository.PartRepository,
		movRepo repository.InventoryMovementRepository,
		receivingRepo repository.ReceivingRepository,
	) error {
		// Bloquea la orden: las mutaciones concurrentes sobre la misma orden esperan aquí.
		o, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.CompanyID != companyID {
			return domain.ErrForbidden
		}
		lines, err := lineRepo.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		before := order.Snapshot{Order: *o, Lines: derefLines(lines)}

		parts, err := partRepo.GetForUpdate(ctx, partIDs(before.Lines, extraParts))
		if err != nil {
			return err
		}
		before.Parts = make(map[string]entity.Part, len(parts))
		for _, p := range parts {
			// Repuestos de otra empresa se tratan como inexistentes.
			if p.CompanyID == o.CompanyID {
				before.Parts[p.ID] = *p
			}
		}

		after, err := op(before)
		if err != nil {
			return err
		}
		if err := persist(ctx, before, after, orderRepo, lineRepo, partRepo, movRepo, receivingRepo); err != nil {
			return err
		}
		result = after
		return nil
	})
	if err != nil {
		ev := uc.log.Error()
		if domain.KindOf(err) != "" || errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			ev = uc.log.Warn()
		}
		ev.Err(err).Str("order_id", orderID).Str("op", opName).Msg("mutación de orden rechazada")
		return nil, err
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("op", opName).
		Str("status", string(result.Order.Status)).
		Str("total", result.Order.Total.StringFixed(2)).
		Int("movements", len(result.Movements)).
		Msg("orden actualizada")
	return toOrderResponse(result), nil
}

// persist escribe solo lo que cambió entre before y after.
func persist(
	ctx context.Context,
	before, after order.Snapshot,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	partRepo repository.PartRepository,
	movRepo repository.InventoryMovementRepository,
	receivingRepo repository.ReceivingRepository,
) error {
	prev := make(map[string]entity.OrderLine, len(before.Lines))
	for _, l := range before.Lines {
		prev[l.ID] = l
	}
	for i := range after.Lines {
		l := after.Lines[i]
		if old, ok := prev[l.ID]; ok && !lineChanged(old, l) {
			continue
		}
		if err := lineRepo.Upsert(ctx, &l); err != nil {
			return err
		}
	}

	touched := map[string]bool{}
	for _, m := range after.Movements {
		touched[m.PartID] = true
	}
	ids := make([]string, 0, len(touched))
	for id := range touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := after.Parts[id]
		if err := partRepo.UpdateStockAndCost(ctx, &p); err != nil {
			return err
		}
	}

	for i := range after.Movements {
		if err := movRepo.Create(ctx, &after.Movements[i]); err != nil {
			return err
		}
	}
	for i := range after.Receivings {
		if err := receivingRepo.Create(ctx, &after.Receivings[i]); err != nil {
			return err
		}
	}
	return orderRepo.Update(ctx, &after.Order)
}

func lineChanged(a, b entity.OrderLine) bool {
	return a.Quantity != b.Quantity ||
		a.ReceivedQuantity != b.ReceivedQuantity ||
		a.Warranty != b.Warranty ||
		a.CoreReturned != b.CoreReturned ||
		a.IsActive != b.IsActive
}

// partIDs repuestos referenciados por las líneas más los extra, sin repetir y ordenados
// para que el bloqueo siempre se tome en el mismo orden.
func partIDs(lines []entity.OrderLine, extra []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, l := range lines {
		add(l.PartID)
	}
	for _, id := range extra {
		add(id)
	}
	sort.Strings(out)
	return out
}

func derefLines(lines []*entity.OrderLine) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, *l)
	}
	return out
}

func toOrderResponse(s order.Snapshot) *dto.OrderResponse {
	o := s.Order
	out := &dto.OrderResponse{
		ID:         o.ID,
		Kind:       string(o.Kind),
		Number:     o.Number,
		CustomerID: o.CustomerID,
		VendorID:   o.VendorID,
		Status:     string(o.Status),
		Total:      o.Total,
		Notes:      o.Notes,
		InvoicedAt: o.InvoicedAt,
		ClosedAt:   o.ClosedAt,
		UpdatedAt:  o.UpdatedAt,
		Lines:      []dto.OrderLineResponse{},
	}
	if o.Kind == entity.OrderKindPurchase {
		out.DerivedStatus = string(orderstatus.Derive(o, s.Lines))
	}
	for _, l := range s.ActiveLines() {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ID:               l.ID,
			PartID:           l.PartID,
			Description:      l.Description,
			Quantity:         l.Quantity,
			ReceivedQuantity: l.ReceivedQuantity,
			UnitCost:         l.UnitCost,
			UnitPrice:        l.UnitPrice,
			CoreCharge:       l.CoreCharge,
			ExtendedAmount:   money.Round2(l.ExtendedAmount(o.Kind)),
			Warranty:         l.Warranty,
			CoreReturned:     l.CoreReturned,
		})
	}
	return out
}
