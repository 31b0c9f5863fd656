package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
	"github.com/jcsalazar/abasto-api/internal/testutil"
)

func seedUnit(f *testutil.Fixture, id string) {
	_ = f.Units.Create(&entity.Unit{ID: id, Name: "Unidad " + id, Active: true})
}

func seedItem(f *testutil.Fixture, id string) {
	_ = f.Items.Create(&entity.Item{ID: id, Code: "C-" + id, Name: "Ítem " + id, Active: true})
}

func seedStock(f *testutil.Fixture, itemID, unitID string, qty int64) {
	_ = f.Stock.Upsert(&entity.Stock{
		ItemID:    itemID,
		UnitID:    unitID,
		Quantity:  decimal.NewFromInt(qty),
		UpdatedAt: time.Now(),
	})
}

func TestDebitStock_Insuficiente(t *testing.T) {
	f := testutil.NewFixture()
	seedStock(f, "item-1", "unidad-1", 5)

	_, err := ledger.DebitStock(f.Stock, "item-1", "unidad-1", decimal.NewFromInt(8), time.Now())

	var shortfall *domain.StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Requested.Equal(decimal.NewFromInt(8)))
	assert.True(t, shortfall.Available.Equal(decimal.NewFromInt(5)))

	// El stock no debe haberse tocado.
	stock, err := f.Stock.Get("item-1", "unidad-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)), "un débito rechazado no muta el stock")
}

func TestDebitStock_SinFilaPrevia(t *testing.T) {
	f := testutil.NewFixture()

	// Sin fila de stock el disponible es cero: cualquier débito falla.
	_, err := ledger.DebitStock(f.Stock, "item-x", "unidad-x", decimal.NewFromInt(1), time.Now())
	var shortfall *domain.StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Available.IsZero())
}

func TestCreditStock_CreaFila(t *testing.T) {
	f := testutil.NewFixture()

	stock, err := ledger.CreditStock(f.Stock, "item-1", "unidad-1", decimal.NewFromInt(3), time.Now())
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(3)))

	stock, err = ledger.CreditStock(f.Stock, "item-1", "unidad-1", decimal.NewFromInt(2), time.Now())
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)))
}

func TestTransfer_DebitaYAcreditaConUnSoloMovimiento(t *testing.T) {
	f := testutil.NewFixture()
	seedStock(f, "item-1", "origen", 10)

	mov, err := ledger.Transfer(f.Stock, f.Movements, ledger.TransferInput{
		ItemID:     "item-1",
		FromUnitID: "origen",
		ToUnitID:   "destino",
		Quantity:   decimal.NewFromInt(4),
		Reason:     entity.MovementReasonTraslado,
		UserID:     "user-1",
		Now:        time.Now(),
	})
	require.NoError(t, err)

	origen, _ := f.Stock.Get("item-1", "origen")
	destino, _ := f.Stock.Get("item-1", "destino")
	assert.True(t, origen.Quantity.Equal(decimal.NewFromInt(6)))
	assert.True(t, destino.Quantity.Equal(decimal.NewFromInt(4)))

	require.Len(t, f.Movements.Movements, 1, "un traslado registra exactamente un movimiento")
	assert.Equal(t, "origen", mov.FromUnitID)
	assert.Equal(t, "destino", mov.ToUnitID)
	assert.Equal(t, entity.MovementReasonTraslado, mov.Reason)
}

func TestTransfer_MismaUnidad(t *testing.T) {
	f := testutil.NewFixture()
	seedStock(f, "item-1", "unidad-1", 10)

	_, err := ledger.Transfer(f.Stock, f.Movements, ledger.TransferInput{
		ItemID:     "item-1",
		FromUnitID: "unidad-1",
		ToUnitID:   "unidad-1",
		Quantity:   decimal.NewFromInt(1),
		Now:        time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransfer_IdaYVueltaRestauraSaldos(t *testing.T) {
	f := testutil.NewFixture()
	seedStock(f, "item-1", "unidad-a", 10)
	seedStock(f, "item-1", "unidad-b", 4)

	ida := ledger.TransferInput{
		ItemID:     "item-1",
		FromUnitID: "unidad-a",
		ToUnitID:   "unidad-b",
		Quantity:   decimal.NewFromInt(3),
		Reason:     entity.MovementReasonTraslado,
		Now:        time.Now(),
	}
	_, err := ledger.Transfer(f.Stock, f.Movements, ida)
	require.NoError(t, err)

	vuelta := ida
	vuelta.FromUnitID, vuelta.ToUnitID = ida.ToUnitID, ida.FromUnitID
	_, err = ledger.Transfer(f.Stock, f.Movements, vuelta)
	require.NoError(t, err)

	a, _ := f.Stock.Get("item-1", "unidad-a")
	b, _ := f.Stock.Get("item-1", "unidad-b")
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(10)), "la vuelta restaura el saldo de origen")
	assert.True(t, b.Quantity.Equal(decimal.NewFromInt(4)), "la vuelta restaura el saldo de destino")
	assert.Len(t, f.Movements.Movements, 2, "cada tramo deja su movimiento")
}

func TestCreditStock_PrimerosCreditosConcurrentesSeSuman(t *testing.T) {
	f := testutil.NewFixture()

	// Dos acreditaciones simultáneas sobre un (ítem, unidad) sin fila previa:
	// ninguna puede pisar a la otra leyendo cero antes de que la otra escriba.
	var wg sync.WaitGroup
	for _, qty := range []int64{3, 2} {
		wg.Add(1)
		go func(qty int64) {
			defer wg.Done()
			err := f.Tx.RunStock(context.Background(), func(stockRepo repository.StockRepository, _ repository.StockMovementRepository) error {
				_, err := ledger.CreditStock(stockRepo, "item-1", "unidad-1", decimal.NewFromInt(qty), time.Now())
				return err
			})
			assert.NoError(t, err)
		}(qty)
	}
	wg.Wait()

	stock, err := f.Stock.Get("item-1", "unidad-1")
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(5)), "los créditos concurrentes se suman, no se sobreescriben")
}

func TestRegisterMovement_Entrada(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	seedItem(f, "item-1")
	uc := ledger.NewMovementUseCase(f.Tx, f.Items, f.Units)

	err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		UserID:   "user-1",
		ItemID:   "item-1",
		UnitID:   "unidad-1",
		Type:     ledger.MovementEntrada,
		Quantity: decimal.NewFromInt(7),
	})
	require.NoError(t, err)

	stock, _ := f.Stock.Get("item-1", "unidad-1")
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))
	require.Len(t, f.Movements.Movements, 1)
	assert.Equal(t, entity.MovementReasonEntrada, f.Movements.Movements[0].Reason)
	assert.Equal(t, "unidad-1", f.Movements.Movements[0].ToUnitID)
}

func TestRegisterMovement_SalidaInsuficiente(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	seedItem(f, "item-1")
	seedStock(f, "item-1", "unidad-1", 2)
	uc := ledger.NewMovementUseCase(f.Tx, f.Items, f.Units)

	err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:   "item-1",
		UnitID:   "unidad-1",
		Type:     ledger.MovementSalida,
		Quantity: decimal.NewFromInt(5),
	})

	var shortfall *domain.StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Empty(t, f.Movements.Movements, "una salida rechazada no registra movimiento")
}

func TestRegisterMovement_AjusteNegativo(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	seedItem(f, "item-1")
	seedStock(f, "item-1", "unidad-1", 10)
	uc := ledger.NewMovementUseCase(f.Tx, f.Items, f.Units)

	err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:   "item-1",
		UnitID:   "unidad-1",
		Type:     ledger.MovementAjuste,
		Quantity: decimal.NewFromInt(-3),
	})
	require.NoError(t, err)

	stock, _ := f.Stock.Get("item-1", "unidad-1")
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(7)))
	require.Len(t, f.Movements.Movements, 1)
	assert.Equal(t, entity.MovementReasonAjuste, f.Movements.Movements[0].Reason)
}

func TestRegisterMovement_TrasladoValidaciones(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	seedUnit(f, "unidad-2")
	seedItem(f, "item-1")
	seedStock(f, "item-1", "unidad-1", 10)
	uc := ledger.NewMovementUseCase(f.Tx, f.Items, f.Units)

	// Origen y destino iguales.
	err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:     "item-1",
		FromUnitID: "unidad-1",
		ToUnitID:   "unidad-1",
		Type:       ledger.MovementTraslado,
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Unidad destino inexistente.
	err = uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:     "item-1",
		FromUnitID: "unidad-1",
		ToUnitID:   "no-existe",
		Type:       ledger.MovementTraslado,
		Quantity:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Tipo desconocido.
	err = uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ItemID:   "item-1",
		UnitID:   "unidad-1",
		Type:     "regalo",
		Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBudgetCreate_RechazaSolape(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)

	_, err := uc.Create(context.Background(), ledger.CreateInput{
		UnitID:      "unidad-1",
		PeriodStart: fecha(2026, time.March, 1),
		PeriodEnd:   fecha(2026, time.March, 31),
		Amount:      decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	// Período que se solapa parcialmente con el anterior.
	_, err = uc.Create(context.Background(), ledger.CreateInput{
		UnitID:      "unidad-1",
		PeriodStart: fecha(2026, time.March, 15),
		PeriodEnd:   fecha(2026, time.April, 15),
		Amount:      decimal.NewFromInt(500),
	})
	assert.ErrorIs(t, err, domain.ErrBudgetOverlap)

	// La misma ventana en otra unidad sí es válida.
	seedUnit(f, "unidad-2")
	_, err = uc.Create(context.Background(), ledger.CreateInput{
		UnitID:      "unidad-2",
		PeriodStart: fecha(2026, time.March, 15),
		PeriodEnd:   fecha(2026, time.April, 15),
		Amount:      decimal.NewFromInt(500),
	})
	assert.NoError(t, err)
}

func TestBudgetCreate_SolapeConcurrenteSoloUnoGana(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)

	// Dos creaciones simultáneas del mismo período: la verificación de solape
	// corre bajo el lock por unidad, así que exactamente una inserta.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(context.Background(), ledger.CreateInput{
				UnitID:      "unidad-1",
				PeriodStart: fecha(2026, time.May, 1),
				PeriodEnd:   fecha(2026, time.May, 31),
				Amount:      decimal.NewFromInt(1000),
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var creados, solapes int
	for err := range errs {
		switch {
		case err == nil:
			creados++
		case errors.Is(err, domain.ErrBudgetOverlap):
			solapes++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, creados)
	assert.Equal(t, 1, solapes)
	assert.Len(t, f.Budgets.Budgets, 1, "nunca quedan dos presupuestos solapados")
}

func TestRecordIncome_IngresosConcurrentesUnSoloPresupuesto(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)
	dia := fecha(2026, time.June, 10)

	var wg sync.WaitGroup
	for _, monto := range []int64{300, 200} {
		wg.Add(1)
		go func(monto int64) {
			defer wg.Done()
			_, err := uc.RecordIncome(context.Background(), "unidad-1", dia, decimal.NewFromInt(monto), "ingreso", "user-1")
			assert.NoError(t, err)
		}(monto)
	}
	wg.Wait()

	// La creación implícita del mes ocurre una sola vez; el segundo ingreso suma.
	require.Len(t, f.Budgets.Budgets, 1)
	assert.True(t, f.Budgets.Budgets[0].Amount.Equal(decimal.NewFromInt(500)))
	assert.Len(t, f.Financial.Transactions, 2)
}

func TestBudgetCreate_RegistraIngresoInicial(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)

	b, err := uc.Create(context.Background(), ledger.CreateInput{
		UnitID:      "unidad-1",
		PeriodStart: fecha(2026, time.May, 1),
		PeriodEnd:   fecha(2026, time.May, 31),
		Amount:      decimal.NewFromInt(2000),
		UserID:      "user-1",
	})
	require.NoError(t, err)
	assert.True(t, b.Available().Equal(decimal.NewFromInt(2000)))

	require.Len(t, f.Financial.Transactions, 1)
	tx := f.Financial.Transactions[0]
	assert.Equal(t, entity.FinancialTypeIngreso, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, b.ID, tx.BudgetID)
}

func TestRecordIncome_CreaPresupuestoImplicito(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)

	b, err := uc.RecordIncome(context.Background(), "unidad-1", fecha(2026, time.June, 10), decimal.NewFromInt(300), "aporte", "user-1")
	require.NoError(t, err)

	// El presupuesto implícito cubre el mes calendario completo.
	assert.True(t, b.PeriodStart.Equal(fecha(2026, time.June, 1)))
	assert.True(t, b.PeriodEnd.Equal(fecha(2026, time.June, 30)))
	assert.True(t, b.Amount.Equal(decimal.NewFromInt(300)))

	// Un segundo ingreso en el mismo mes suma al existente.
	b2, err := uc.RecordIncome(context.Background(), "unidad-1", fecha(2026, time.June, 20), decimal.NewFromInt(200), "aporte", "user-1")
	require.NoError(t, err)
	assert.Equal(t, b.ID, b2.ID)
	assert.True(t, b2.Amount.Equal(decimal.NewFromInt(500)))
	assert.Len(t, f.Budgets.Budgets, 1)
}

func TestDebitBudget_SobreDisponible(t *testing.T) {
	f := testutil.NewFixture()
	_ = f.Budgets.Create(&entity.Budget{
		ID:          "b-1",
		UnitID:      "unidad-1",
		PeriodStart: fecha(2026, time.July, 1),
		PeriodEnd:   fecha(2026, time.July, 31),
		Amount:      decimal.NewFromInt(100),
		Used:        decimal.NewFromInt(80),
	})

	_, err := ledger.DebitBudget(f.Budgets, "unidad-1", fecha(2026, time.July, 15), decimal.NewFromInt(30), time.Now())

	var shortfall *domain.BudgetShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.True(t, shortfall.Available.Equal(decimal.NewFromInt(20)))

	b, _ := f.Budgets.GetByID("b-1")
	assert.True(t, b.Used.Equal(decimal.NewFromInt(80)), "un débito rechazado no muta el presupuesto")
}

func TestDebitBudget_SinPresupuestoParaElPeriodo(t *testing.T) {
	f := testutil.NewFixture()

	_, err := ledger.DebitBudget(f.Budgets, "unidad-1", fecha(2026, time.July, 15), decimal.NewFromInt(10), time.Now())
	assert.ErrorIs(t, err, domain.ErrNoBudgetForPeriod)
}

func TestManualDebit_DejaTransaccionNegativa(t *testing.T) {
	f := testutil.NewFixture()
	seedUnit(f, "unidad-1")
	_ = f.Budgets.Create(&entity.Budget{
		ID:          "b-1",
		UnitID:      "unidad-1",
		PeriodStart: fecha(2026, time.August, 1),
		PeriodEnd:   fecha(2026, time.August, 31),
		Amount:      decimal.NewFromInt(100),
		Used:        decimal.Zero,
	})
	uc := ledger.NewBudgetUseCase(f.Tx, f.Budgets, f.Units)

	b, err := uc.ManualDebit(context.Background(), "unidad-1", fecha(2026, time.August, 10), decimal.NewFromInt(40), "ajuste manual", "user-1")
	require.NoError(t, err)
	assert.True(t, b.Available().Equal(decimal.NewFromInt(60)))

	require.Len(t, f.Financial.Transactions, 1)
	tx := f.Financial.Transactions[0]
	assert.Equal(t, entity.FinancialTypeAjuste, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(-40)))
}
