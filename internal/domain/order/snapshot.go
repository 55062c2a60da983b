package order

import (
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Snapshot estado de una orden tal como lo entrega el repositorio: cabecera, todas sus
// líneas y los repuestos que esas líneas (o la operación en curso) referencian.
//
// Movements y Receivings son salidas: contienen solo lo generado por la última operación
// y el caller debe persistirlos junto con el resto del snapshot.
type Snapshot struct {
	Order      entity.Order
	Lines      []entity.OrderLine
	Parts      map[string]entity.Part
	Movements  []entity.InventoryMovement
	Receivings []entity.ReceivingEntry
}

// clone copia profunda de las colecciones para no tocar el snapshot del caller.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Order: s.Order,
		Lines: make([]entity.OrderLine, len(s.Lines)),
		Parts: make(map[string]entity.Part, len(s.Parts)),
	}
	copy(out.Lines, s.Lines)
	for id, p := range s.Parts {
		out.Parts[id] = p
	}
	return out
}

// lineIndex índice de la línea activa con ese ID, o -1.
func (s Snapshot) lineIndex(lineID string) int {
	for i, l := range s.Lines {
		if l.ID == lineID && l.IsActive {
			return i
		}
	}
	return -1
}

// ActiveLines devuelve solo las líneas activas.
func (s Snapshot) ActiveLines() []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		if l.IsActive {
			out = append(out, l)
		}
	}
	return out
}

// Total suma los montos extendidos de las líneas activas, redondeado a moneda.
// Es función pura de las líneas: recalcular siempre da el mismo resultado.
func Total(kind entity.OrderKind, lines []entity.OrderLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		if !l.IsActive {
			continue
		}
		sum = sum.Add(l.ExtendedAmount(kind))
	}
	return money.Round2(sum)
}
