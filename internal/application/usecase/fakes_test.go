package usecase_test

import (
	"context"
	"sort"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/jobcost"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// memStore base de datos en memoria. El txRunner trabaja sobre una copia y solo la
// confirma si la función no devuelve error.
type memStore struct {
	orders     map[string]entity.Order
	lines      map[string][]entity.OrderLine
	parts      map[string]entity.Part
	movements  []entity.InventoryMovement
	receivings []entity.ReceivingEntry
	markup     *entity.MarkupSettings
	jobCosting *jobcost.Settings
	returns    []entity.Return
	claims     []entity.WarrantyClaim
	lockCalls  [][]string
}

func newMemStore() *memStore {
	return &memStore{
		orders: map[string]entity.Order{},
		lines:  map[string][]entity.OrderLine{},
		parts:  map[string]entity.Part{},
	}
}

func (m *memStore) clone() *memStore {
	out := *m
	out.orders = make(map[string]entity.Order, len(m.orders))
	for k, v := range m.orders {
		out.orders[k] = v
	}
	out.lines = make(map[string][]entity.OrderLine, len(m.lines))
	for k, v := range m.lines {
		out.lines[k] = append([]entity.OrderLine(nil), v...)
	}
	out.parts = make(map[string]entity.Part, len(m.parts))
	for k, v := range m.parts {
		out.parts[k] = v
	}
	out.movements = append([]entity.InventoryMovement(nil), m.movements...)
	out.receivings = append([]entity.ReceivingEntry(nil), m.receivings...)
	out.lockCalls = append([][]string(nil), m.lockCalls...)
	return &out
}

// ── TxRunner ──

type memTxRunner struct{ s *memStore }

func (r memTxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	partRepo repository.PartRepository,
	movRepo repository.InventoryMovementRepository,
	receivingRepo repository.ReceivingRepository,
) error) error {
	work := r.s.clone()
	if err := fn(memOrderRepo{work}, memLineRepo{work}, memPartRepo{work}, memMovRepo{work}, memReceivingRepo{work}); err != nil {
		return err
	}
	*r.s = *work
	return nil
}

// ── Repos ──

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r memOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r memOrderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.orders[o.ID] = *o
	return nil
}

type memLineRepo struct{ s *memStore }

func (r memLineRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	for _, l := range r.s.lines[orderID] {
		l := l
		out = append(out, &l)
	}
	return out, nil
}

func (r memLineRepo) Upsert(_ context.Context, line *entity.OrderLine) error {
	lines := r.s.lines[line.OrderID]
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = *line
			return nil
		}
	}
	r.s.lines[line.OrderID] = append(lines, *line)
	return nil
}

type memPartRepo struct{ s *memStore }

func (r memPartRepo) GetByID(_ context.Context, id string) (*entity.Part, error) {
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memPartRepo) GetForUpdate(_ context.Context, ids []string) ([]*entity.Part, error) {
	r.s.lockCalls = append(r.s.lockCalls, append([]string(nil), ids...))
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	var out []*entity.Part
	for _, id := range sorted {
		if p, ok := r.s.parts[id]; ok {
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r memPartRepo) UpdateStockAndCost(_ context.Context, p *entity.Part) error {
	r.s.parts[p.ID] = *p
	return nil
}

type memMovRepo struct{ s *memStore }

func (r memMovRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r memMovRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.s.movements {
		if m.OrderID == orderID {
			m := m
			out = append(out, &m)
		}
	}
	return out, nil
}

type memReceivingRepo struct{ s *memStore }

func (r memReceivingRepo) Create(_ context.Context, e *entity.ReceivingEntry) error {
	r.s.receivings = append(r.s.receivings, *e)
	return nil
}

func (r memReceivingRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.ReceivingEntry, error) {
	var out []*entity.ReceivingEntry
	for _, e := range r.s.receivings {
		if e.OrderID == orderID {
			e := e
			out = append(out, &e)
		}
	}
	return out, nil
}

type memSettingsRepo struct{ s *memStore }

func (r memSettingsRepo) GetMarkup(_ context.Context, _ string) (*entity.MarkupSettings, error) {
	return r.s.markup, nil
}

func (r memSettingsRepo) GetJobCosting(_ context.Context, _ string) (*jobcost.Settings, error) {
	return r.s.jobCosting, nil
}

type memReturnRepo struct{ s *memStore }

func (r memReturnRepo) GetByID(_ context.Context, id string) (*entity.Return, error) {
	for _, x := range r.s.returns {
		if x.ID == id {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r memReturnRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Return, error) {
	var out []*entity.Return
	for _, x := range r.s.returns {
		if x.CompanyID == companyID {
			x := x
			out = append(out, &x)
		}
	}
	return out, nil
}

type memClaimRepo struct{ s *memStore }

func (r memClaimRepo) GetByID(_ context.Context, id string) (*entity.WarrantyClaim, error) {
	for _, x := range r.s.claims {
		if x.ID == id {
			x := x
			return &x, nil
		}
	}
	return nil, nil
}

func (r memClaimRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.WarrantyClaim, error) {
	var out []*entity.WarrantyClaim
	for _, x := range r.s.claims {
		if x.CompanyID == companyID {
			x := x
			out = append(out, &x)
		}
	}
	return out, nil
}
