package purchase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/testutil"
)

func TestQuotationSelect_PropagaPrecioYReemplazaSeleccion(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	purchaseUC := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	uc := purchase.NewQuotationUseCase(f.Tx, f.Quotes, f.Purchases)

	p, err := purchaseUC.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	q, err := uc.Create(p.ID, "cotización arroz", "user-1")
	require.NoError(t, err)
	assert.Equal(t, entity.QuotationStatusAbierta, q.Status)

	r1, err := uc.AddResponse(q.ID, "item-1", "Proveedor A", decimal.NewFromInt(40), 5)
	require.NoError(t, err)
	r2, err := uc.AddResponse(q.ID, "item-1", "Proveedor B", decimal.NewFromInt(35), 10)
	require.NoError(t, err)

	// Seleccionar la primera respuesta.
	require.NoError(t, uc.Select(context.Background(), r1.ID))

	got, _ := purchaseUC.GetByID(p.ID)
	require.NotNil(t, got.Items[0].UnitPrice)
	assert.True(t, got.Items[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(400)))

	// Seleccionar la segunda desmarca la primera y reemplaza precio y total.
	require.NoError(t, uc.Select(context.Background(), r2.ID))

	sel1, _ := f.Quotes.GetResponse(r1.ID)
	sel2, _ := f.Quotes.GetResponse(r2.ID)
	assert.False(t, sel1.IsSelected, "a lo sumo una respuesta seleccionada por (cotización, ítem)")
	assert.True(t, sel2.IsSelected)

	got, _ = purchaseUC.GetByID(p.ID)
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(350)))
	require.NotNil(t, got.Items[0].Supplier)
	assert.Equal(t, "Proveedor B", *got.Items[0].Supplier)

	// Cada selección deja su registro en el histórico de precios.
	assert.Len(t, f.Prices.Records, 2)
}

func TestQuotationSelect_ReseleccionYaSeleccionada(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	purchaseUC := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	uc := purchase.NewQuotationUseCase(f.Tx, f.Quotes, f.Purchases)

	p, err := purchaseUC.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	q, err := uc.Create(p.ID, "", "user-1")
	require.NoError(t, err)
	resp, err := uc.AddResponse(q.ID, "item-1", "Proveedor A", decimal.NewFromInt(40), 5)
	require.NoError(t, err)

	require.NoError(t, uc.Select(context.Background(), resp.ID))

	// Volver a seleccionar la misma respuesta es un duplicado, no un no-op.
	err = uc.Select(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrDuplicateSelection)

	// La selección original queda intacta y sin histórico repetido.
	sel, _ := f.Quotes.GetResponse(resp.ID)
	assert.True(t, sel.IsSelected)
	assert.Len(t, f.Prices.Records, 1)
}

func TestQuotationSelect_CompraFinalizada(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	seedBudget(f, "unidad-1", 2000)
	purchaseUC := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	uc := purchase.NewQuotationUseCase(f.Tx, f.Quotes, f.Purchases)

	p := crearCompra(t, f, purchaseUC)
	q, err := uc.Create(p.ID, "", "user-1")
	require.NoError(t, err)
	resp, err := uc.AddResponse(q.ID, "item-1", "Proveedor A", decimal.NewFromInt(45), 3)
	require.NoError(t, err)

	_, err = purchaseUC.Finalize(context.Background(), p.ID, "user-1")
	require.NoError(t, err)

	err = uc.Select(context.Background(), resp.ID)
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te, "una compra finalizada es inmutable")
}

func TestQuotationAddResponse_ItemFueraDeLaCompra(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	purchaseUC := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	uc := purchase.NewQuotationUseCase(f.Tx, f.Quotes, f.Purchases)

	p, err := purchaseUC.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(1)}},
	})
	require.NoError(t, err)
	q, err := uc.Create(p.ID, "", "user-1")
	require.NoError(t, err)

	_, err = uc.AddResponse(q.ID, "item-2", "Proveedor A", decimal.NewFromInt(10), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuotationDeselect_AnulaPrecio(t *testing.T) {
	f := testutil.NewFixture()
	seedBase(f)
	purchaseUC := purchase.NewUseCase(f.Tx, f.Purchases, f.Units, f.Items)
	uc := purchase.NewQuotationUseCase(f.Tx, f.Quotes, f.Purchases)

	p, err := purchaseUC.Create(purchase.CreateInput{
		UnitID: "unidad-1",
		Items:  []purchase.CreateItemInput{{ItemID: "item-1", Quantity: decimal.NewFromInt(2)}},
	})
	require.NoError(t, err)
	q, err := uc.Create(p.ID, "", "user-1")
	require.NoError(t, err)
	resp, err := uc.AddResponse(q.ID, "item-1", "Proveedor A", decimal.NewFromInt(30), 2)
	require.NoError(t, err)

	require.NoError(t, uc.Select(context.Background(), resp.ID))
	require.NoError(t, uc.Deselect(context.Background(), resp.ID))

	got, _ := purchaseUC.GetByID(p.ID)
	assert.Nil(t, got.Items[0].UnitPrice)
	assert.True(t, got.TotalValue.IsZero())

	// Deseleccionar dos veces es conflicto.
	err = uc.Deselect(context.Background(), resp.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}
