package purchase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/testutil"
)

func seedBase(f *testutil.Fixture) {
	_ = f.Units.Create(&entity.Unit{ID: "unidad-1", Name: "Sede Centro", Active: true})
	_ = f.Items.Create(&entity.Item{ID: "item-1", Code: "ARR-01", Name: "Arroz", Active: true})
	_ = f.Items.Create(&entity.Item{ID: "item-2", Code: "ACE-01", Name: "Aceite", Active: true})
}

func seedBudget(f *testutil.Fixture, unitID string, amount int64) *entity.Budget {
	now := time.Now()
	b := &entity.Budget{
		ID:          "budget-" + unitID,
		UnitID:      unitID,
		PeriodStart: now.AddDate(0, 0, -15),
		PeriodEnd:   now.AddDate(0, 0, 15),
		Amount:      decimal.NewFromInt(amount),
		Used:        decimal.Zero,
	}
	_ = f.Budgets.Create(b)
	return b
}

func precio(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func crearCompra(t *testing.T, f *testutil.Fixture, uc *purchase.UseCase) *entity.Purchase {
	t.Helper()
	p, err := uc.Create(purchase.CreateInput{
		UnitID:   "unidad-1",
		Supplier: "Distribuidora Norte",
		UserID:   "user-1",
		Items: []purchase.CreateItemInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(10), UnitPrice: precio(50)},
			{ItemID: "item-2", Quantity: decimal.NewFromInt(4), UnitPrice: precio(100)},
		},
	})
	require.NoError(t, err)
	return p
}

func TestCreate_CalculaTotal(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)

	p := crearCompra(t, f, uc)

	assert.Equal(t, entity.PurchaseStatusPedidoRealizado, p.Status)
	assert.True(t, p.TotalValue.Equal(decimal.NewFromInt(900)), "10×50 + 4×100")
}

func TestCreate_ItemInexistente(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)

	_, err := uc.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "no-existe", Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus_NoPermiteFinalizado(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	err := uc.ChangeStatus(context.Background(), p.ID, entity.PurchaseStatusFinalizado, "user-1")
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te, "finalizado solo se alcanza vía Finalize")
}

func TestChangeStatus_AvanceYRetroceso(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	require.NoError(t, uc.ChangeStatus(context.Background(), p.ID, entity.PurchaseStatusEnCotizacion, "user-1"))

	got, err := uc.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusEnCotizacion, got.Status)

	// El retroceso se rechaza y queda rastro de auditoría solo del avance.
	err = uc.ChangeStatus(context.Background(), p.ID, entity.PurchaseStatusPedidoRealizado, "user-1")
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Len(t, f.Audit.Entries, 1)
}

func TestFinalize_AcreditaStockYDebitaPresupuesto(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	budget := seedBudget(f, "unidad-1", 1000)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	finalized, err := uc.Finalize(context.Background(), p.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusFinalizado, finalized.Status)
	require.NotNil(t, finalized.FinalizedAt)

	// Presupuesto: 1000 - 900 = 100 disponibles.
	assert.True(t, budget.Used.Equal(decimal.NewFromInt(900)))
	assert.True(t, budget.Available().Equal(decimal.NewFromInt(100)))

	// Stock acreditado por línea.
	s1, _ := f.Stock.Get("item-1", "unidad-1")
	s2, _ := f.Stock.Get("item-2", "unidad-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, s2.Quantity.Equal(decimal.NewFromInt(4)))

	// Movimientos con razón compra, referenciando la compra.
	require.Len(t, f.Movements.Movements, 2)
	for _, m := range f.Movements.Movements {
		assert.Equal(t, entity.MovementReasonCompra, m.Reason)
		assert.Equal(t, p.ID, m.Reference)
	}

	// Transacción financiera negativa por el total.
	require.Len(t, f.Financial.Transactions, 1)
	assert.True(t, f.Financial.Transactions[0].Amount.Equal(decimal.NewFromInt(-900)))
	assert.Equal(t, entity.FinancialTypeCompra, f.Financial.Transactions[0].Type)
}

func TestFinalize_PresupuestoInsuficienteNoMutaNada(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	budget := seedBudget(f, "unidad-1", 500) // total de la compra: 900
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	_, err := uc.Finalize(context.Background(), p.ID, "user-1")

	var shortfall *domain.BudgetShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Required.Equal(decimal.NewFromInt(900)))
	assert.True(t, shortfall.Available.Equal(decimal.NewFromInt(500)))

	// Ni presupuesto, ni stock, ni movimientos tocados.
	assert.True(t, budget.Used.IsZero())
	s1, _ := f.Stock.Get("item-1", "unidad-1")
	assert.True(t, s1.Quantity.IsZero())
	assert.Empty(t, f.Movements.Movements)
	assert.Empty(t, f.Financial.Transactions)

	got, _ := uc.GetByID(p.ID)
	assert.NotEqual(t, entity.PurchaseStatusFinalizado, got.Status)
}

func TestFinalize_DobleFinalizacion(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	seedBudget(f, "unidad-1", 2000)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	_, err := uc.Finalize(context.Background(), p.ID, "user-1")
	require.NoError(t, err)

	_, err = uc.Finalize(context.Background(), p.ID, "user-1")
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)

	// El segundo intento no vuelve a debitar ni acreditar.
	s1, _ := f.Stock.Get("item-1", "unidad-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Len(t, f.Financial.Transactions, 1)
}

func TestFinalize_RechazaLineaSinPrecio(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	seedBudget(f, "unidad-1", 2000)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)

	p, err := uc.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items: []purchase.CreateItemInput{
			{ItemID: "item-1", Quantity: decimal.NewFromInt(5), UnitPrice: precio(20)},
			{ItemID: "item-2", Quantity: decimal.NewFromInt(3)}, // sin precio
		},
	})
	require.NoError(t, err)

	_, err = uc.Finalize(context.Background(), p.ID, "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.Movements.Movements)
}

func TestSetItemPrice_RecalculaTotal(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)

	p, err := uc.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(6)}},
	})
	require.NoError(t, err)
	assert.True(t, p.TotalValue.IsZero())

	err = uc.SetItemPrice(context.Background(), p.ID, p.Items[0].ID, decimal.NewFromInt(25), "Proveedor Sur")
	require.NoError(t, err)

	got, _ := uc.GetByID(p.ID)
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, got.Items[0].Supplier)
	assert.Equal(t, "Proveedor Sur", *got.Items[0].Supplier)
}

func TestSetItemPrice_PrecioCero(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	uc := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	p := crearCompra(t, f, uc)

	err := uc.SetItemPrice(context.Background(), p.ID, p.Items[0].ID, decimal.Zero, "Proveedor")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
