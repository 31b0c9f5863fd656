package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/inventory"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/testutil"
)

func seedInventoryWorld(f *testutil.Fixture) {
	_ = f.Items.Create(&entity.Item{ID: "computador", Code: "PC-01", Name: "Computador", HasLifecycle: true, Active: true})
	_ = f.Items.Create(&entity.Item{ID: "arroz", Code: "ARR-01", Name: "Arroz", Active: true})
	_ = f.Stock.Upsert(&entity.Stock{ItemID: "computador", UnitID: "sede-1", Quantity: decimal.NewFromInt(5)})
	_ = f.Stock.Upsert(&entity.Stock{ItemID: "arroz", UnitID: "sede-1", Quantity: decimal.NewFromInt(100)})
}

func TestMoveToInventory_CicloDeVidaIndividualiza(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "computador",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(3),
		Location: "sala de sistemas",
		UserID:   "user-1",
	})
	require.NoError(t, err)

	// Un registro de cantidad 1 por unidad física.
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.True(t, rec.Quantity.Equal(decimal.NewFromInt(1)))
		assert.Equal(t, entity.InventoryStatusActivo, rec.Status)
		assert.Equal(t, "sala de sistemas", rec.Location)
	}

	// El stock baja por el total movido y queda un solo movimiento.
	stock, _ := f.Stock.Get("computador", "sede-1")
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(2)))
	require.Len(t, f.Movements.Movements, 1)
	assert.Equal(t, entity.MovementReasonIndividualizar, f.Movements.Movements[0].Reason)
}

func TestMoveToInventory_CicloDeVidaRechazaFraccion(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	_, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "computador",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromFloat(1.5),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMoveToInventory_SinCicloDeVidaUnSoloRegistro(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "arroz",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(40),
		Location: "bodega",
		UserID:   "user-1",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Quantity.Equal(decimal.NewFromInt(40)))
}

func TestMoveToInventory_StockInsuficiente(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	_, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "computador",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(9),
	})
	var shortfall *domain.StockShortfallError
	require.ErrorAs(t, err, &shortfall)
	records, _ := f.Inventory.ListByUnit("sede-1", 100, 0)
	assert.Empty(t, records)
}

func TestReturnToStock_IdaYVuelta(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "arroz",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(40),
		UserID:   "user-1",
	})
	require.NoError(t, err)
	rec := records[0]

	// Devolución parcial: el registro conserva el resto.
	require.NoError(t, uc.ReturnToStock(context.Background(), rec.ID, decimal.NewFromInt(15), "user-1"))
	got, _ := f.Inventory.GetByID(rec.ID)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, entity.InventoryStatusActivo, got.Status)

	stock, _ := f.Stock.Get("arroz", "sede-1")
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(75)), "60 tras individualizar + 15 devueltos")

	// Devolver el resto deja el registro en baja y el stock como al inicio.
	require.NoError(t, uc.ReturnToStock(context.Background(), rec.ID, decimal.NewFromInt(25), "user-1"))
	got, _ = f.Inventory.GetByID(rec.ID)
	assert.Equal(t, entity.InventoryStatusBaja, got.Status)
	stock, _ = f.Stock.Get("arroz", "sede-1")
	assert.True(t, stock.Quantity.Equal(decimal.NewFromInt(100)))

	// Un registro en baja no acepta más devoluciones.
	err = uc.ReturnToStock(context.Background(), rec.ID, decimal.NewFromInt(1), "user-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReturnToStock_MasDeLoQueHay(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "arroz",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(10),
		UserID:   "user-1",
	})
	require.NoError(t, err)

	err = uc.ReturnToStock(context.Background(), records[0].ID, decimal.NewFromInt(11), "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterEvent_SigueElEstadoDelEvento(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "computador",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(1),
		UserID:   "user-1",
	})
	require.NoError(t, err)
	rec := records[0]

	ev, err := uc.RegisterEvent(rec.ID, entity.InventoryEventMantenimiento, "limpieza anual", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryEventMantenimiento, ev.Type)

	got, _ := f.Inventory.GetByID(rec.ID)
	assert.Equal(t, entity.InventoryStatusMantenimiento, got.Status)

	_, err = uc.RegisterEvent(rec.ID, entity.InventoryEventReactivacion, "", "user-1")
	require.NoError(t, err)
	got, _ = f.Inventory.GetByID(rec.ID)
	assert.Equal(t, entity.InventoryStatusActivo, got.Status)

	events, _ := uc.ListEvents(rec.ID)
	assert.Len(t, events, 2)
}

func TestRegisterEvent_SoloItemsConCicloDeVida(t *testing.T) {
	f := testutil.NewFixture()
	seedInventoryWorld(f)
	uc := inventory.NewUseCase(f.Tx, f.Items, f.Inventory)

	records, err := uc.MoveToInventory(context.Background(), inventory.MoveInput{
		ItemID:   "arroz",
		UnitID:   "sede-1",
		Quantity: decimal.NewFromInt(5),
		UserID:   "user-1",
	})
	require.NoError(t, err)

	_, err = uc.RegisterEvent(records[0].ID, entity.InventoryEventMantenimiento, "", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
