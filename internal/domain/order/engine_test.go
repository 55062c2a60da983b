package order_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/order"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newEngine() *order.Engine {
	n := 0
	return order.NewEngine(
		func() time.Time { return fixedNow },
		func() string { n++; return fmt.Sprintf("id-%d", n) },
	)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testParts() map[string]entity.Part {
	return map[string]entity.Part{
		"p1": {ID: "p1", Name: "Filtro de aceite", Cost: decp("10"), SellingPrice: dec("15.50"), QuantityOnHand: 5, IsActive: true},
		"p2": {ID: "p2", Name: "Alternador", Cost: decp("100"), AvgCost: decp("90"), SellingPrice: dec("180"), QuantityOnHand: 1,
			CoreRequired: true, CoreChargeAmount: dec("40"), IsActive: true},
		"old": {ID: "old", Name: "Descontinuado", Cost: decp("1"), IsActive: false},
	}
}

func salesSnapshot() order.Snapshot {
	return order.Snapshot{
		Order: entity.Order{ID: "so1", Number: "SO-1", Kind: entity.OrderKindSales, Status: entity.OrderStatusOpen},
		Parts: testParts(),
	}
}

func purchaseSnapshot(ordered, received int) order.Snapshot {
	return order.Snapshot{
		Order: entity.Order{ID: "po1", Number: "PO-1", Kind: entity.OrderKindPurchase, VendorID: "v1", Status: entity.OrderStatusOpen},
		Lines: []entity.OrderLine{{
			ID: "pl1", OrderID: "po1", PartID: "p1", Quantity: ordered, ReceivedQuantity: received,
			UnitCost: dec("12"), IsActive: true,
		}},
		Parts: testParts(),
	}
}

func requireCode(t *testing.T, err error, target *domain.Error) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, target, "se esperaba %s, se obtuvo %v", target.Code, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddLine
// ──────────────────────────────────────────────────────────────────────────────

func TestAddLine_VentaDescuentaStockYCongelaPrecio(t *testing.T) {
	e := newEngine()
	in := salesSnapshot()

	out, err := e.AddLine(in, order.AddLineInput{PartID: "p1", Quantity: 3})
	require.NoError(t, err)

	require.Len(t, out.Lines, 1)
	line := out.Lines[0]
	assert.Equal(t, "Filtro de aceite", line.Description)
	assert.Equal(t, "15.5", line.UnitPrice.String())
	assert.Equal(t, "10", line.UnitCost.String())
	assert.Equal(t, 2, out.Parts["p1"].QuantityOnHand)
	assert.Equal(t, "46.50", out.Order.Total.StringFixed(2))

	require.Len(t, out.Movements, 1)
	assert.Equal(t, entity.MovementTypeOUT, out.Movements[0].Type)
	assert.Equal(t, -3, out.Movements[0].Quantity)

	// El snapshot de entrada no se toca.
	assert.Empty(t, in.Lines)
	assert.Equal(t, 5, in.Parts["p1"].QuantityOnHand)
}

func TestAddLine_PermiteBackorder(t *testing.T) {
	out, err := newEngine().AddLine(salesSnapshot(), order.AddLineInput{PartID: "p1", Quantity: 8})
	require.NoError(t, err)
	assert.Equal(t, -3, out.Parts["p1"].QuantityOnHand)
}

func TestAddLine_CargoDeCasco(t *testing.T) {
	e := newEngine()
	out, err := e.AddLine(salesSnapshot(), order.AddLineInput{PartID: "p2", Quantity: 2})
	require.NoError(t, err)

	assert.Equal(t, "40", out.Lines[0].CoreCharge.String())
	assert.Equal(t, "90", out.Lines[0].UnitCost.String(), "el costo usa la cascada (avg_cost)")
	assert.Equal(t, "440.00", out.Order.Total.StringFixed(2)) // 2 * (180 + 40)

	out, err = e.ToggleCoreReturned(out, out.Lines[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "360.00", out.Order.Total.StringFixed(2))
	assert.Equal(t, -1, out.Parts["p2"].QuantityOnHand, "el flag no mueve inventario")
	assert.Empty(t, out.Movements)
}

func TestAddLine_Validaciones(t *testing.T) {
	e := newEngine()
	s := salesSnapshot()

	_, err := e.AddLine(s, order.AddLineInput{PartID: "p1", Quantity: 0})
	requireCode(t, err, domain.ErrInvalidQuantity)

	_, err = e.AddLine(s, order.AddLineInput{PartID: "nope", Quantity: 1})
	requireCode(t, err, domain.ErrPartNotFound)

	_, err = e.AddLine(s, order.AddLineInput{PartID: "old", Quantity: 1})
	requireCode(t, err, domain.ErrPartInactive)

	_, err = e.AddLine(s, order.AddLineInput{Quantity: 1})
	requireCode(t, err, domain.ErrMissingField)

	_, err = e.AddLine(s, order.AddLineInput{PartID: "p1", Quantity: 1, UnitPrice: decp("-1")})
	requireCode(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAddLine_CompraNoMueveStock(t *testing.T) {
	s := purchaseSnapshot(1, 0)
	out, err := newEngine().AddLine(s, order.AddLineInput{PartID: "p2", Quantity: 4, UnitCost: decp("85")})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Parts["p2"].QuantityOnHand)
	assert.True(t, out.Lines[1].CoreCharge.IsZero())
	assert.Equal(t, "352.00", out.Order.Total.StringFixed(2)) // 1*12 + 4*85
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateQuantity / RemoveLine
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateQuantity_AplicaDelta(t *testing.T) {
	e := newEngine()
	s, err := e.AddLine(salesSnapshot(), order.AddLineInput{PartID: "p1", Quantity: 2})
	require.NoError(t, err)
	lineID := s.Lines[0].ID

	up, err := e.UpdateQuantity(s, lineID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, up.Parts["p1"].QuantityOnHand)
	assert.Equal(t, -2, up.Movements[0].Quantity)

	down, err := e.UpdateQuantity(up, lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, down.Parts["p1"].QuantityOnHand)
	assert.Equal(t, entity.MovementTypeIN, down.Movements[0].Type)
	assert.Equal(t, "15.50", down.Order.Total.StringFixed(2))

	_, err = e.UpdateQuantity(down, lineID, -1)
	requireCode(t, err, domain.ErrInvalidQuantity)

	_, err = e.UpdateQuantity(down, "missing", 1)
	requireCode(t, err, domain.ErrLineNotFound)
}

func TestUpdateQuantity_CompraNoBajaDeLoRecibido(t *testing.T) {
	_, err := newEngine().UpdateQuantity(purchaseSnapshot(10, 6), "pl1", 5)
	requireCode(t, err, domain.ErrOverReceive)
	assert.Equal(t, domain.KindInvariant, domain.KindOf(err))
}

func TestRemoveLine_RoundTripDeInventario(t *testing.T) {
	e := newEngine()
	start := salesSnapshot()
	original := start.Parts["p1"].QuantityOnHand

	withLine, err := e.AddLine(start, order.AddLineInput{PartID: "p1", Quantity: 3})
	require.NoError(t, err)

	removed, err := e.RemoveLine(withLine, withLine.Lines[0].ID)
	require.NoError(t, err)
	assert.Equal(t, withLine.Parts["p1"].QuantityOnHand+3, removed.Parts["p1"].QuantityOnHand,
		"eliminar restaura exactamente la cantidad de la línea")
	assert.False(t, removed.Lines[0].IsActive)
	assert.True(t, removed.Order.Total.IsZero())

	again, err := e.AddLine(removed, order.AddLineInput{PartID: "p1", Quantity: 3})
	require.NoError(t, err)
	back, err := e.RemoveLine(again, again.Lines[1].ID)
	require.NoError(t, err)
	assert.Equal(t, original, back.Parts["p1"].QuantityOnHand)

	_, err = e.RemoveLine(removed, withLine.Lines[0].ID)
	requireCode(t, err, domain.ErrLineNotFound)
}

func TestRemoveLine_CompraRecibidaNoSeElimina(t *testing.T) {
	_, err := newEngine().RemoveLine(purchaseSnapshot(10, 1), "pl1")
	requireCode(t, err, domain.ErrLineReceived)

	out, err := newEngine().RemoveLine(purchaseSnapshot(10, 0), "pl1")
	require.NoError(t, err)
	assert.Equal(t, 5, out.Parts["p1"].QuantityOnHand, "las compras no mueven stock al eliminar")
}

// pl1 recibida completa, pl2 pendiente.
func partialPurchaseSnapshot() order.Snapshot {
	s := purchaseSnapshot(10, 10)
	s.Order.Status = entity.OrderStatusPartiallyReceived
	s.Lines = append(s.Lines, entity.OrderLine{
		ID: "pl2", OrderID: "po1", PartID: "p2", Quantity: 5, UnitCost: dec("80"), IsActive: true,
	})
	return s
}

func TestRemoveLine_UltimaPendienteDejaLaCompraRecibida(t *testing.T) {
	e := newEngine()
	out, err := e.RemoveLine(partialPurchaseSnapshot(), "pl2")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, out.Order.Status)

	_, err = e.AddLine(out, order.AddLineInput{PartID: "p1", Quantity: 1})
	requireCode(t, err, domain.ErrOrderLocked)
}

func TestUpdateQuantity_ReducirALoRecibidoDejaLaCompraRecibida(t *testing.T) {
	e := newEngine()
	out, err := e.UpdateQuantity(partialPurchaseSnapshot(), "pl2", 0)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, out.Order.Status)

	_, err = e.UpdateQuantity(out, "pl1", 12)
	requireCode(t, err, domain.ErrOrderLocked)
}

func TestUpdateQuantity_CompraParcialSigueParcial(t *testing.T) {
	out, err := newEngine().UpdateQuantity(partialPurchaseSnapshot(), "pl2", 3)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, out.Order.Status)
}

func TestToggleWarranty(t *testing.T) {
	e := newEngine()
	s, _ := e.AddLine(salesSnapshot(), order.AddLineInput{PartID: "p1", Quantity: 1})

	out, err := e.ToggleWarranty(s, s.Lines[0].ID)
	require.NoError(t, err)
	assert.True(t, out.Lines[0].Warranty)
	assert.Equal(t, s.Parts["p1"].QuantityOnHand, out.Parts["p1"].QuantityOnHand)

	out, err = e.ToggleWarranty(out, s.Lines[0].ID)
	require.NoError(t, err)
	assert.False(t, out.Lines[0].Warranty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_ParcialYCompleto(t *testing.T) {
	e := newEngine()
	s := purchaseSnapshot(10, 0)

	first, err := e.Receive(s, "pl1", 4)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPartiallyReceived, first.Order.Status)
	assert.Equal(t, 4, first.Lines[0].ReceivedQuantity)
	assert.Equal(t, 9, first.Parts["p1"].QuantityOnHand)
	assert.Equal(t, "12", first.Parts["p1"].LastCost.String())
	assert.Equal(t, "10.8889", first.Parts["p1"].AvgCost.String()) // (5*10 + 4*12) / 9

	require.Len(t, first.Receivings, 1)
	rcv := first.Receivings[0]
	assert.Equal(t, "v1", rcv.VendorID)
	assert.Equal(t, "pl1", rcv.LineID)
	assert.Equal(t, 4, rcv.Quantity)
	assert.Equal(t, fixedNow, rcv.ReceivedAt)
	assert.Equal(t, entity.MovementTypeRECEIPT, first.Movements[0].Type)

	second, err := e.Receive(first, "pl1", 6)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusReceived, second.Order.Status)
	assert.Equal(t, 15, second.Parts["p1"].QuantityOnHand)
	assert.Len(t, second.Receivings, 1, "solo las entradas de la última operación")
}

func TestReceive_SobreRecepcionNoCambiaNada(t *testing.T) {
	e := newEngine()
	s := purchaseSnapshot(10, 8)

	out, err := e.Receive(s, "pl1", 3)
	requireCode(t, err, domain.ErrOverReceive)
	assert.Equal(t, 8, out.Lines[0].ReceivedQuantity)
	assert.Equal(t, 5, out.Parts["p1"].QuantityOnHand)
	assert.Empty(t, out.Receivings)
}

func TestReceive_Validaciones(t *testing.T) {
	e := newEngine()
	_, err := e.Receive(purchaseSnapshot(10, 0), "pl1", 0)
	requireCode(t, err, domain.ErrInvalidQuantity)

	_, err = e.Receive(salesSnapshot(), "x", 1)
	requireCode(t, err, domain.ErrWrongOrderKind)

	closed := purchaseSnapshot(10, 0)
	closed.Order.Status = entity.OrderStatusClosed
	_, err = e.Receive(closed, "pl1", 1)
	requireCode(t, err, domain.ErrOrderLocked)
}

// ──────────────────────────────────────────────────────────────────────────────
// Invoice / Close / bloqueo
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_BloqueaLaOrden(t *testing.T) {
	e := newEngine()
	s, err := e.AddLine(salesSnapshot(), order.AddLineInput{PartID: "p1", Quantity: 2})
	require.NoError(t, err)

	invoiced, err := e.Invoice(s)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusInvoiced, invoiced.Order.Status)
	require.NotNil(t, invoiced.Order.InvoicedAt)

	out, err := e.AddLine(invoiced, order.AddLineInput{PartID: "p1", Quantity: 1})
	requireCode(t, err, domain.ErrOrderLocked)
	assert.True(t, invoiced.Order.Total.Equal(out.Order.Total), "el total no cambia")
	assert.Len(t, out.Lines, 1)

	lineID := s.Lines[0].ID
	_, err = e.UpdateQuantity(invoiced, lineID, 5)
	requireCode(t, err, domain.ErrOrderLocked)
	_, err = e.RemoveLine(invoiced, lineID)
	requireCode(t, err, domain.ErrOrderLocked)
	_, err = e.ToggleWarranty(invoiced, lineID)
	requireCode(t, err, domain.ErrOrderLocked)
	_, err = e.Invoice(invoiced)
	requireCode(t, err, domain.ErrOrderLocked)
}

func TestCloseEInvoicePorTipo(t *testing.T) {
	e := newEngine()
	_, err := e.Close(salesSnapshot())
	requireCode(t, err, domain.ErrWrongOrderKind)

	_, err = e.Invoice(purchaseSnapshot(1, 0))
	requireCode(t, err, domain.ErrWrongOrderKind)

	closed, err := e.Close(purchaseSnapshot(1, 0))
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusClosed, closed.Order.Status)

	work := salesSnapshot()
	work.Order.Kind = entity.OrderKindWork
	_, err = e.Close(work)
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales
// ──────────────────────────────────────────────────────────────────────────────

func TestRecalculate_Idempotente(t *testing.T) {
	e := newEngine()
	s, _ := e.AddLine(salesSnapshot(), order.AddLineInput{PartID: "p1", Quantity: 3})
	s, _ = e.AddLine(s, order.AddLineInput{PartID: "p2", Quantity: 1, UnitPrice: decp("199.999")})

	first := e.Recalculate(s)
	second := e.Recalculate(first)

	assert.True(t, s.Order.Total.Equal(first.Order.Total))
	assert.True(t, first.Order.Total.Equal(second.Order.Total))
	assert.Equal(t, "286.50", first.Order.Total.StringFixed(2)) // 46.50 + 239.999 -> 286.499 -> 286.50
}

func TestTotal_IgnoraLineasInactivas(t *testing.T) {
	lines := []entity.OrderLine{
		{Quantity: 2, UnitPrice: dec("5"), IsActive: true},
		{Quantity: 9, UnitPrice: dec("100"), IsActive: false},
	}
	assert.Equal(t, "10.00", order.Total(entity.OrderKindWork, lines).StringFixed(2))
}
