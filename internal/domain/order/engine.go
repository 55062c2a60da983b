// Package order aplica operaciones sobre las líneas de órdenes de venta, de trabajo y de
// compra, preservando las invariantes de inventario y de totales.
//
// Cada operación recibe un Snapshot y devuelve uno nuevo; el de entrada nunca se modifica.
// Las validaciones se hacen antes de cualquier cambio, así que un error implica que no hubo
// efecto alguno. Los errores esperados son *domain.Error (nunca panic).
//
// El motor asume acceso exclusivo a la orden durante la llamada: serializar por orden
// es responsabilidad del repositorio.
package order

import (
	"fmt"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/inventory"
	"github.com/jhoicas/Taller-api/internal/domain/orderstatus"
	"github.com/jhoicas/Taller-api/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// Clock reloj inyectado.
type Clock func() time.Time

// IDGenerator generador de identificadores inyectado.
type IDGenerator func() string

// Engine motor de mutación de órdenes. No guarda estado propio.
type Engine struct {
	now   Clock
	newID IDGenerator
}

// NewEngine construye el motor con reloj e identidad inyectados.
func NewEngine(now Clock, newID IDGenerator) *Engine {
	return &Engine{now: now, newID: newID}
}

// AddLineInput datos para agregar una línea.
// UnitPrice y UnitCost son opcionales; si faltan se copian del repuesto.
type AddLineInput struct {
	PartID      string
	Quantity    int
	Description string
	UnitPrice   *decimal.Decimal
	UnitCost    *decimal.Decimal
	Warranty    bool
}

// AddLine agrega una línea. En ventas y trabajo descuenta la cantidad de la existencia
// (puede quedar negativa = backorder). Precio, costo y casco se congelan al momento de agregar.
func (e *Engine) AddLine(s Snapshot, in AddLineInput) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	if in.PartID == "" {
		return s, domain.NewError(domain.ErrMissingField, "part_id es requerido")
	}
	if in.Quantity <= 0 {
		return s, domain.NewError(domain.ErrInvalidQuantity, "la cantidad debe ser mayor que cero")
	}
	part, ok := s.Parts[in.PartID]
	if !ok {
		return s, domain.ErrPartNotFound
	}
	if !part.IsActive {
		return s, domain.ErrPartInactive
	}
	if in.UnitPrice != nil && in.UnitPrice.LessThan(decimal.Zero) {
		return s, domain.NewError(domain.ErrInvalidAmount, "unit_price no puede ser negativo")
	}
	if in.UnitCost != nil && in.UnitCost.LessThan(decimal.Zero) {
		return s, domain.NewError(domain.ErrInvalidAmount, "unit_cost no puede ser negativo")
	}

	now := e.now()
	out := s.clone()

	unitCost := decimal.Zero
	if basis, _ := pricing.CostBasis(part); basis != nil {
		unitCost = *basis
	}
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}
	unitPrice := part.SellingPrice
	if in.UnitPrice != nil {
		unitPrice = *in.UnitPrice
	}
	coreCharge := decimal.Zero
	if part.CoreRequired && s.Order.Kind != entity.OrderKindPurchase {
		coreCharge = part.CoreChargeAmount
	}
	desc := in.Description
	if desc == "" {
		desc = part.Name
	}

	line := entity.OrderLine{
		ID:          e.newID(),
		OrderID:     s.Order.ID,
		PartID:      part.ID,
		Description: desc,
		Quantity:    in.Quantity,
		UnitCost:    unitCost,
		UnitPrice:   unitPrice,
		CoreCharge:  coreCharge,
		Warranty:    in.Warranty,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	out.Lines = append(out.Lines, line)

	if s.Order.AffectsStockOnLineChange() {
		e.moveStock(&out, line, -in.Quantity, now)
	}
	return e.finish(out, now), nil
}

// UpdateQuantity cambia la cantidad de una línea y aplica la diferencia a la existencia.
// En compras la nueva cantidad no puede quedar por debajo de lo ya recibido.
func (e *Engine) UpdateQuantity(s Snapshot, lineID string, qty int) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	if qty < 0 {
		return s, domain.NewError(domain.ErrInvalidQuantity, "la cantidad no puede ser negativa")
	}
	idx := s.lineIndex(lineID)
	if idx < 0 {
		return s, domain.ErrLineNotFound
	}
	line := s.Lines[idx]
	if s.Order.Kind == entity.OrderKindPurchase && qty < line.ReceivedQuantity {
		return s, domain.NewError(domain.ErrOverReceive,
			fmt.Sprintf("la línea ya tiene %d unidades recibidas", line.ReceivedQuantity))
	}
	affectsStock := s.Order.AffectsStockOnLineChange()
	if affectsStock {
		if _, ok := s.Parts[line.PartID]; !ok {
			return s, domain.ErrPartNotFound
		}
	}

	now := e.now()
	out := s.clone()
	delta := qty - line.Quantity
	line.Quantity = qty
	line.UpdatedAt = now
	out.Lines[idx] = line
	if affectsStock && delta != 0 {
		e.moveStock(&out, line, -delta, now)
	}
	return e.finish(out, now), nil
}

// RemoveLine desactiva la línea y devuelve su cantidad a la existencia.
// Una línea de compra con unidades recibidas no se puede eliminar.
func (e *Engine) RemoveLine(s Snapshot, lineID string) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	idx := s.lineIndex(lineID)
	if idx < 0 {
		return s, domain.ErrLineNotFound
	}
	line := s.Lines[idx]
	if s.Order.Kind == entity.OrderKindPurchase && line.ReceivedQuantity != 0 {
		return s, domain.ErrLineReceived
	}
	affectsStock := s.Order.AffectsStockOnLineChange()
	if affectsStock {
		if _, ok := s.Parts[line.PartID]; !ok {
			return s, domain.ErrPartNotFound
		}
	}

	now := e.now()
	out := s.clone()
	line.IsActive = false
	line.UpdatedAt = now
	out.Lines[idx] = line
	if affectsStock && line.Quantity != 0 {
		e.moveStock(&out, line, line.Quantity, now)
	}
	return e.finish(out, now), nil
}

// ToggleWarranty invierte el flag de garantía. Sin efecto en inventario.
func (e *Engine) ToggleWarranty(s Snapshot, lineID string) (Snapshot, error) {
	return e.toggle(s, lineID, func(l *entity.OrderLine) { l.Warranty = !l.Warranty })
}

// ToggleCoreReturned invierte el flag de casco devuelto. Sin efecto en inventario;
// sí cambia el total porque el cargo de casco deja de cobrarse.
func (e *Engine) ToggleCoreReturned(s Snapshot, lineID string) (Snapshot, error) {
	return e.toggle(s, lineID, func(l *entity.OrderLine) { l.CoreReturned = !l.CoreReturned })
}

func (e *Engine) toggle(s Snapshot, lineID string, flip func(*entity.OrderLine)) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	idx := s.lineIndex(lineID)
	if idx < 0 {
		return s, domain.ErrLineNotFound
	}
	now := e.now()
	out := s.clone()
	line := out.Lines[idx]
	flip(&line)
	line.UpdatedAt = now
	out.Lines[idx] = line
	return e.finish(out, now), nil
}

// Receive registra la recepción de qty unidades contra una línea de compra: incrementa lo
// recibido y la existencia del repuesto, actualiza último costo y costo promedio, deja un
// ReceivingEntry de auditoría y estampa el estado derivado en la orden.
func (e *Engine) Receive(s Snapshot, lineID string, qty int) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	if s.Order.Kind != entity.OrderKindPurchase {
		return s, domain.NewError(domain.ErrWrongOrderKind, "solo se recibe contra órdenes de compra")
	}
	if qty <= 0 {
		return s, domain.NewError(domain.ErrInvalidQuantity, "la cantidad a recibir debe ser mayor que cero")
	}
	idx := s.lineIndex(lineID)
	if idx < 0 {
		return s, domain.ErrLineNotFound
	}
	line := s.Lines[idx]
	if line.ReceivedQuantity+qty > line.Quantity {
		return s, domain.NewError(domain.ErrOverReceive,
			fmt.Sprintf("pedido %d, recibido %d, se intentó recibir %d", line.Quantity, line.ReceivedQuantity, qty))
	}
	part, ok := s.Parts[line.PartID]
	if !ok {
		return s, domain.ErrPartNotFound
	}

	now := e.now()
	out := s.clone()
	line.ReceivedQuantity += qty
	line.UpdatedAt = now
	out.Lines[idx] = line

	currentAvg := part.CostOrZero()
	if part.AvgCost != nil {
		currentAvg = *part.AvgCost
	}
	avg := inventory.WeightedAverageCost(part.QuantityOnHand, currentAvg, qty, line.UnitCost)
	last := line.UnitCost
	part.AvgCost = &avg
	part.LastCost = &last
	out.Parts[part.ID] = part

	e.moveStock(&out, line, qty, now)
	out.Movements[len(out.Movements)-1].Type = entity.MovementTypeRECEIPT
	out.Receivings = append(out.Receivings, entity.ReceivingEntry{
		ID:         e.newID(),
		OrderID:    s.Order.ID,
		LineID:     line.ID,
		PartID:     line.PartID,
		VendorID:   s.Order.VendorID,
		Quantity:   qty,
		UnitCost:   line.UnitCost,
		ReceivedAt: now,
	})
	return e.finish(out, now), nil
}

// Invoice factura una orden de venta o de trabajo. Después ninguna línea se puede mutar.
func (e *Engine) Invoice(s Snapshot) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	if s.Order.Kind == entity.OrderKindPurchase {
		return s, domain.NewError(domain.ErrWrongOrderKind, "una orden de compra se cierra, no se factura")
	}
	now := e.now()
	out := s.clone()
	out.Order.Status = entity.OrderStatusInvoiced
	out.Order.InvoicedAt = &now
	return e.finish(out, now), nil
}

// Close cierra una orden de compra o de trabajo.
func (e *Engine) Close(s Snapshot) (Snapshot, error) {
	if err := ensureUnlocked(s.Order); err != nil {
		return s, err
	}
	if s.Order.Kind == entity.OrderKindSales {
		return s, domain.NewError(domain.ErrWrongOrderKind, "una orden de venta se factura, no se cierra")
	}
	now := e.now()
	out := s.clone()
	out.Order.Status = entity.OrderStatusClosed
	out.Order.ClosedAt = &now
	return e.finish(out, now), nil
}

// Recalculate recalcula el total de la orden a partir de sus líneas activas.
// Se puede llamar en cualquier estado, incluso bloqueada: no cambia líneas.
func (e *Engine) Recalculate(s Snapshot) Snapshot {
	out := s.clone()
	out.Order.Total = Total(out.Order.Kind, out.Lines)
	return out
}

// finish recalcula el total y, en compras abiertas, vuelve a derivar el estado: quitar o
// reducir la última línea pendiente deja la orden recibida y por lo tanto bloqueada.
func (e *Engine) finish(s Snapshot, now time.Time) Snapshot {
	s.Order.Total = Total(s.Order.Kind, s.Lines)
	if s.Order.Kind == entity.OrderKindPurchase &&
		(s.Order.Status == entity.OrderStatusOpen || s.Order.Status == entity.OrderStatusPartiallyReceived) {
		s.Order.Status = orderstatus.Derive(s.Order, s.Lines)
	}
	s.Order.UpdatedAt = now
	return s
}

// moveStock aplica delta a la existencia del repuesto y deja el movimiento de auditoría.
func (e *Engine) moveStock(s *Snapshot, line entity.OrderLine, delta int, now time.Time) {
	part := s.Parts[line.PartID]
	part.QuantityOnHand += delta
	part.UpdatedAt = now
	s.Parts[line.PartID] = part

	typ := entity.MovementTypeIN
	if delta < 0 {
		typ = entity.MovementTypeOUT
	}
	s.Movements = append(s.Movements, entity.InventoryMovement{
		ID:        e.newID(),
		OrderID:   line.OrderID,
		LineID:    line.ID,
		PartID:    line.PartID,
		Type:      typ,
		Quantity:  delta,
		UnitCost:  line.UnitCost,
		CreatedAt: now,
	})
}

func ensureUnlocked(o entity.Order) error {
	if o.Status.IsTerminal() {
		return domain.NewError(domain.ErrOrderLocked, fmt.Sprintf("la orden %s está en estado %s", o.Number, o.Status))
	}
	return nil
}
