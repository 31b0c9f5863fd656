// Package testutil provee implementaciones en memoria de los puertos de
// persistencia y un TxRunner que ejecuta las funciones directamente sobre
// ellas, para probar casos de uso sin base de datos.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// Fixture agrupa todos los repositorios en memoria y el TxRunner que los expone.
type Fixture struct {
	Units     *MemUnitRepo
	Items     *MemItemRepo
	Budgets   *MemBudgetRepo
	Stock     *MemStockRepo
	Movements *MemMovementRepo
	Financial *MemFinancialRepo
	Inventory *MemInventoryRepo
	Purchases *MemPurchaseRepo
	Quotes    *MemQuotationRepo
	Prices    *MemPriceHistoryRepo
	Requests  *MemRequestRepo
	Transit   *MemInTransitRepo
	Audit     *MemAuditRepo
	Tx        *TxRunner
}

// NewFixture construye el fixture con repositorios vacíos.
func NewFixture() *Fixture {
	f := &Fixture{
		Units:     &MemUnitRepo{byID: map[string]*entity.Unit{}},
		Items:     &MemItemRepo{byID: map[string]*entity.Item{}},
		Budgets:   &MemBudgetRepo{},
		Stock:     &MemStockRepo{byKey: map[string]*entity.Stock{}},
		Movements: &MemMovementRepo{},
		Financial: &MemFinancialRepo{},
		Inventory: &MemInventoryRepo{byID: map[string]*entity.InventoryRecord{}},
		Purchases: &MemPurchaseRepo{byID: map[string]*entity.Purchase{}},
		Quotes:    &MemQuotationRepo{byID: map[string]*entity.Quotation{}, respByID: map[string]*entity.QuotationResponse{}},
		Prices:    &MemPriceHistoryRepo{},
		Requests:  &MemRequestRepo{byID: map[string]*entity.Request{}},
		Transit:   &MemInTransitRepo{},
		Audit:     &MemAuditRepo{},
	}
	f.Tx = &TxRunner{f: f}
	return f
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

type MemUserRepo struct {
	byID map[string]*entity.User
}

// NewMemUserRepo construye el repositorio de usuarios en memoria.
func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: map[string]*entity.User{}}
}

func (r *MemUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *MemUserRepo) Update(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *MemUserRepo) GetByID(id string) (*entity.User, error) { return r.byID[id], nil }

func (r *MemUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

// ── Unidades ──────────────────────────────────────────────────────────────────

type MemUnitRepo struct {
	byID map[string]*entity.Unit
}

func (r *MemUnitRepo) Create(u *entity.Unit) error { r.byID[u.ID] = u; return nil }
func (r *MemUnitRepo) Update(u *entity.Unit) error { r.byID[u.ID] = u; return nil }
func (r *MemUnitRepo) GetByID(id string) (*entity.Unit, error) { return r.byID[id], nil }

func (r *MemUnitRepo) List(limit, offset int) ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *MemUnitRepo) ListDistributionCenters() ([]*entity.Unit, error) {
	var out []*entity.Unit
	for _, u := range r.byID {
		if u.IsDistributionCenter && u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

// ── Ítems ─────────────────────────────────────────────────────────────────────

type MemItemRepo struct {
	byID map[string]*entity.Item
}

func (r *MemItemRepo) Create(i *entity.Item) error { r.byID[i.ID] = i; return nil }
func (r *MemItemRepo) Update(i *entity.Item) error { r.byID[i.ID] = i; return nil }
func (r *MemItemRepo) GetByID(id string) (*entity.Item, error) { return r.byID[id], nil }

func (r *MemItemRepo) GetByCode(code string) (*entity.Item, error) {
	for _, i := range r.byID {
		if i.Code == code {
			return i, nil
		}
	}
	return nil, nil
}

func (r *MemItemRepo) List(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, i := range r.byID {
		out = append(out, i)
	}
	return out, nil
}

// ── Presupuestos ──────────────────────────────────────────────────────────────

type MemBudgetRepo struct {
	Budgets []*entity.Budget
}

// LockUnit no necesita hacer nada: el TxRunner de pruebas ya ejecuta las
// transacciones de a una, que es lo que el advisory lock garantiza en PostgreSQL.
func (r *MemBudgetRepo) LockUnit(unitID string) error { return nil }

func (r *MemBudgetRepo) Create(b *entity.Budget) error {
	r.Budgets = append(r.Budgets, b)
	return nil
}

func (r *MemBudgetRepo) Update(b *entity.Budget) error {
	for i, x := range r.Budgets {
		if x.ID == b.ID {
			r.Budgets[i] = b
			return nil
		}
	}
	r.Budgets = append(r.Budgets, b)
	return nil
}

func (r *MemBudgetRepo) GetByID(id string) (*entity.Budget, error) {
	for _, b := range r.Budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *MemBudgetRepo) GetForPeriod(unitID string, date time.Time) (*entity.Budget, error) {
	for _, b := range r.Budgets {
		if b.UnitID == unitID && b.Contains(date) {
			return b, nil
		}
	}
	return nil, nil
}

func (r *MemBudgetRepo) GetForPeriodForUpdate(unitID string, date time.Time) (*entity.Budget, error) {
	return r.GetForPeriod(unitID, date)
}

func (r *MemBudgetRepo) HasOverlapping(unitID string, start, end time.Time, excludeID string) (bool, error) {
	for _, b := range r.Budgets {
		if b.UnitID == unitID && b.ID != excludeID && b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemBudgetRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Budget, error) {
	var out []*entity.Budget
	for _, b := range r.Budgets {
		if b.UnitID == unitID {
			out = append(out, b)
		}
	}
	return out, nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

type MemStockRepo struct {
	byKey map[string]*entity.Stock
}

func stockKey(itemID, unitID string) string { return itemID + "|" + unitID }

// Get devuelve la fila o una entidad en cero si no existe, igual que el
// adaptador de PostgreSQL.
func (r *MemStockRepo) Get(itemID, unitID string) (*entity.Stock, error) {
	if s, ok := r.byKey[stockKey(itemID, unitID)]; ok {
		return s, nil
	}
	return &entity.Stock{ItemID: itemID, UnitID: unitID}, nil
}

// GetForUpdate materializa la fila en cero si no existe, igual que el adaptador
// de PostgreSQL: el caller siempre recibe la fila que luego va a actualizar.
func (r *MemStockRepo) GetForUpdate(itemID, unitID string) (*entity.Stock, error) {
	k := stockKey(itemID, unitID)
	if s, ok := r.byKey[k]; ok {
		return s, nil
	}
	s := &entity.Stock{ItemID: itemID, UnitID: unitID}
	r.byKey[k] = s
	return s, nil
}

func (r *MemStockRepo) Upsert(s *entity.Stock) error {
	r.byKey[stockKey(s.ItemID, s.UnitID)] = s
	return nil
}

func (r *MemStockRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range r.byKey {
		if s.UnitID == unitID {
			out = append(out, s)
		}
	}
	return out, nil
}

// ── Movimientos de stock ──────────────────────────────────────────────────────

type MemMovementRepo struct {
	Movements []*entity.StockMovement
}

func (r *MemMovementRepo) Create(m *entity.StockMovement) error {
	r.Movements = append(r.Movements, m)
	return nil
}

func (r *MemMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.Movements {
		if m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemMovementRepo) ListByUnit(unitID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.Movements {
		if m.FromUnitID == unitID || m.ToUnitID == unitID {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── Transacciones financieras ─────────────────────────────────────────────────

type MemFinancialRepo struct {
	Transactions []*entity.FinancialTransaction
}

func (r *MemFinancialRepo) Create(tx *entity.FinancialTransaction) error {
	r.Transactions = append(r.Transactions, tx)
	return nil
}

func (r *MemFinancialRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.FinancialTransaction, error) {
	var out []*entity.FinancialTransaction
	for _, tx := range r.Transactions {
		if tx.UnitID == unitID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ── Inventario individualizado ────────────────────────────────────────────────

type MemInventoryRepo struct {
	byID   map[string]*entity.InventoryRecord
	Events []*entity.InventoryEvent
}

func (r *MemInventoryRepo) Create(rec *entity.InventoryRecord) error { r.byID[rec.ID] = rec; return nil }
func (r *MemInventoryRepo) Update(rec *entity.InventoryRecord) error { r.byID[rec.ID] = rec; return nil }

func (r *MemInventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	return r.byID[id], nil
}

func (r *MemInventoryRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	return r.byID[id], nil
}

func (r *MemInventoryRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	for _, rec := range r.byID {
		if rec.UnitID == unitID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemInventoryRepo) CreateEvent(ev *entity.InventoryEvent) error {
	r.Events = append(r.Events, ev)
	return nil
}

func (r *MemInventoryRepo) ListEvents(inventoryID string) ([]*entity.InventoryEvent, error) {
	var out []*entity.InventoryEvent
	for _, ev := range r.Events {
		if ev.InventoryID == inventoryID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// ── Compras ───────────────────────────────────────────────────────────────────

type MemPurchaseRepo struct {
	byID map[string]*entity.Purchase
}

func (r *MemPurchaseRepo) Create(p *entity.Purchase) error { r.byID[p.ID] = p; return nil }
func (r *MemPurchaseRepo) Update(p *entity.Purchase) error { r.byID[p.ID] = p; return nil }

func (r *MemPurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	return r.byID[id], nil
}

func (r *MemPurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	return r.byID[id], nil
}

func (r *MemPurchaseRepo) UpdateItem(item *entity.PurchaseItem) error {
	p, ok := r.byID[item.PurchaseID]
	if !ok {
		return nil
	}
	for i, it := range p.Items {
		if it.ID == item.ID {
			p.Items[i] = item
			return nil
		}
	}
	return nil
}

func (r *MemPurchaseRepo) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range r.byID {
		if p.UnitID == unitID && (status == "" || p.Status == status) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Cotizaciones ──────────────────────────────────────────────────────────────

type MemQuotationRepo struct {
	byID     map[string]*entity.Quotation
	respByID map[string]*entity.QuotationResponse
}

func (r *MemQuotationRepo) Create(q *entity.Quotation) error { r.byID[q.ID] = q; return nil }
func (r *MemQuotationRepo) Update(q *entity.Quotation) error { r.byID[q.ID] = q; return nil }

func (r *MemQuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	return r.byID[id], nil
}

func (r *MemQuotationRepo) ListByPurchase(purchaseID string) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	for _, q := range r.byID {
		if q.PurchaseID == purchaseID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *MemQuotationRepo) CreateResponse(resp *entity.QuotationResponse) error {
	r.respByID[resp.ID] = resp
	return nil
}

func (r *MemQuotationRepo) UpdateResponse(resp *entity.QuotationResponse) error {
	r.respByID[resp.ID] = resp
	return nil
}

func (r *MemQuotationRepo) GetResponse(id string) (*entity.QuotationResponse, error) {
	return r.respByID[id], nil
}

func (r *MemQuotationRepo) ListResponses(quotationID string) ([]*entity.QuotationResponse, error) {
	var out []*entity.QuotationResponse
	for _, resp := range r.respByID {
		if resp.QuotationID == quotationID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *MemQuotationRepo) ClearSelection(quotationID, itemID string) error {
	for _, resp := range r.respByID {
		if resp.QuotationID == quotationID && resp.ItemID == itemID && resp.IsSelected {
			resp.IsSelected = false
		}
	}
	return nil
}

// ── Histórico de precios ──────────────────────────────────────────────────────

type MemPriceHistoryRepo struct {
	Records []*entity.PriceHistory
}

func (r *MemPriceHistoryRepo) Create(rec *entity.PriceHistory) error {
	r.Records = append(r.Records, rec)
	return nil
}

func (r *MemPriceHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistory, error) {
	var out []*entity.PriceHistory
	for _, rec := range r.Records {
		if rec.ItemID == itemID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// ── Solicitudes ───────────────────────────────────────────────────────────────

type MemRequestRepo struct {
	byID map[string]*entity.Request
}

func (r *MemRequestRepo) Create(req *entity.Request) error { r.byID[req.ID] = req; return nil }
func (r *MemRequestRepo) Update(req *entity.Request) error { r.byID[req.ID] = req; return nil }

func (r *MemRequestRepo) GetByID(id string) (*entity.Request, error) {
	return r.byID[id], nil
}

func (r *MemRequestRepo) GetByIDForUpdate(id string) (*entity.Request, error) {
	return r.byID[id], nil
}

func (r *MemRequestRepo) UpdateItem(item *entity.RequestItem) error {
	req, ok := r.byID[item.RequestID]
	if !ok {
		return nil
	}
	for i, it := range req.Items {
		if it.ID == item.ID {
			req.Items[i] = item
			return nil
		}
	}
	return nil
}

func (r *MemRequestRepo) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Request, error) {
	var out []*entity.Request
	for _, req := range r.byID {
		if req.RequestingUnitID == unitID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *MemRequestRepo) ListByCD(cdUnitID, status string, limit, offset int) ([]*entity.Request, error) {
	var out []*entity.Request
	for _, req := range r.byID {
		if req.CDUnitID == cdUnitID && (status == "" || req.Status == status) {
			out = append(out, req)
		}
	}
	return out, nil
}

// ── En tránsito ───────────────────────────────────────────────────────────────

type MemInTransitRepo struct {
	Records []*entity.InTransit
}

func (r *MemInTransitRepo) Create(rec *entity.InTransit) error {
	r.Records = append(r.Records, rec)
	return nil
}

func (r *MemInTransitRepo) ListByRequest(requestID string) ([]*entity.InTransit, error) {
	var out []*entity.InTransit
	for _, rec := range r.Records {
		if rec.RequestID == requestID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *MemInTransitRepo) MarkDelivered(id string, at time.Time) error {
	for _, rec := range r.Records {
		if rec.ID == id {
			rec.Status = entity.InTransitStatusEntregado
			t := at
			rec.DeliveredAt = &t
		}
	}
	return nil
}

// ── Auditoría ─────────────────────────────────────────────────────────────────

type MemAuditRepo struct {
	Entries []*entity.AuditLog
}

func (r *MemAuditRepo) Create(e *entity.AuditLog) error {
	r.Entries = append(r.Entries, e)
	return nil
}

func (r *MemAuditRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error) {
	var out []*entity.AuditLog
	for _, e := range r.Entries {
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// TxRunner pasa los repositorios en memoria directamente a la función. No hay
// rollback: los casos de uso verifican antes de mutar, y eso es justamente lo
// que las pruebas confirman. El mutex ejecuta las transacciones de a una,
// igual que los bloqueos de fila y el advisory lock serializan en PostgreSQL,
// de modo que las pruebas concurrentes sean deterministas.
type TxRunner struct {
	f  *Fixture
	mu sync.Mutex
}

func (t *TxRunner) RunStock(ctx context.Context, fn func(repository.StockRepository, repository.StockMovementRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Stock, t.f.Movements)
}

func (t *TxRunner) RunBudget(ctx context.Context, fn func(repository.BudgetRepository, repository.FinancialTransactionRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Budgets, t.f.Financial)
}

func (t *TxRunner) RunInventory(ctx context.Context, fn func(repository.InventoryRepository, repository.StockRepository, repository.StockMovementRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Inventory, t.f.Stock, t.f.Movements)
}

func (t *TxRunner) RunFinalize(ctx context.Context, fn func(repository.PurchaseRepository, repository.StockRepository, repository.StockMovementRepository, repository.BudgetRepository, repository.FinancialTransactionRepository, repository.AuditLogRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Purchases, t.f.Stock, t.f.Movements, t.f.Budgets, t.f.Financial, t.f.Audit)
}

func (t *TxRunner) RunSelection(ctx context.Context, fn func(repository.QuotationRepository, repository.PurchaseRepository, repository.PriceHistoryRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Quotes, t.f.Purchases, t.f.Prices)
}

func (t *TxRunner) RunSend(ctx context.Context, fn func(repository.RequestRepository, repository.StockRepository, repository.StockMovementRepository, repository.InTransitRepository, repository.PurchaseRepository, repository.AuditLogRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Requests, t.f.Stock, t.f.Movements, t.f.Transit, t.f.Purchases, t.f.Audit)
}

func (t *TxRunner) RunReceive(ctx context.Context, fn func(repository.RequestRepository, repository.InTransitRepository, repository.StockRepository, repository.StockMovementRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.f.Requests, t.f.Transit, t.f.Stock, t.f.Movements)
}
