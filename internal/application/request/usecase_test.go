package request_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/application/request"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/testutil"
)

func seedWorld(f *testutil.Fixture) {
	_ = f.Units.Create(&entity.Unit{ID: "cd-1", Name: "CD Principal", IsDistributionCenter: true, Active: true})
	_ = f.Units.Create(&entity.Unit{ID: "sede-1", Name: "Sede Norte", Active: true})
	_ = f.Items.Create(&entity.Item{ID: "item-1", Code: "ARR-01", Name: "Arroz", Active: true})
	_ = f.Items.Create(&entity.Item{ID: "item-2", Code: "ACE-01", Name: "Aceite", Active: true})
}

func seedCDStock(f *testutil.Fixture, itemID string, qty int64) {
	_ = f.Stock.Upsert(&entity.Stock{ItemID: itemID, UnitID: "cd-1", Quantity: decimal.NewFromInt(qty)})
}

func crearSolicitud(t *testing.T, uc *request.UseCase) *entity.Request {
	t.Helper()
	r, err := uc.Create(request.CreateInput{
		RequestingUnitID: "sede-1",
		CDUnitID:         "cd-1",
		UserID:           "user-1",
		Items: []request.CreateItemInput{
			{ItemID: "item-1", QuantityRequested: decimal.NewFromInt(10), EstimatedPrice: decimal.NewFromInt(5)},
			{ItemID: "item-2", QuantityRequested: decimal.NewFromInt(6), EstimatedPrice: decimal.NewFromInt(8)},
		},
	})
	require.NoError(t, err)
	return r
}

// Lleva la solicitud recién creada hasta aprobado.
func aprobar(t *testing.T, uc *request.UseCase, id string) *entity.Request {
	t.Helper()
	require.NoError(t, uc.ChangeStatus(context.Background(), id, entity.RequestStatusEnAnalisis, "user-2"))
	r, err := uc.Approve(context.Background(), id, nil, "user-2")
	require.NoError(t, err)
	return r
}

func TestCreate_DestinoDebeSerCD(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)

	_, err := uc.Create(request.CreateInput{
		RequestingUnitID: "cd-1",
		CDUnitID:         "sede-1", // no es CD
		Items:            []request.CreateItemInput{{ItemID: "item-1", QuantityRequested: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_TotalEstimado(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)

	r := crearSolicitud(t, uc)
	assert.Equal(t, entity.RequestStatusSolicitado, r.Status)
	assert.True(t, r.TotalEstimatedCost.Equal(decimal.NewFromInt(98)), "10×5 + 6×8")
}

func TestApprove_RecortaCantidadesYCongelaTotal(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	require.NoError(t, uc.ChangeStatus(context.Background(), r.ID, entity.RequestStatusEnAnalisis, "user-2"))

	approved, err := uc.Approve(context.Background(), r.ID, map[string]decimal.Decimal{
		"item-1": decimal.NewFromInt(4), // recorta 10 -> 4
	}, "user-2")
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusAprobado, approved.Status)
	// 4×5 + 6×8 = 68: la línea no recortada conserva la solicitada.
	assert.True(t, approved.TotalEstimatedCost.Equal(decimal.NewFromInt(68)))
}

func TestApprove_CantidadMayorALaSolicitada(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	require.NoError(t, uc.ChangeStatus(context.Background(), r.ID, entity.RequestStatusEnAnalisis, "user-2"))

	_, err := uc.Approve(context.Background(), r.ID, map[string]decimal.Decimal{
		"item-1": decimal.NewFromInt(99),
	}, "user-2")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSend_ConStockDebitaCDYCreaTransito(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	seedCDStock(f, "item-1", 50)
	seedCDStock(f, "item-2", 50)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	aprobar(t, uc, r.ID)
	totalAntes := decimal.NewFromInt(98)

	res, err := uc.Send(context.Background(), request.SendInput{RequestID: r.ID, UserID: "user-2"})
	require.NoError(t, err)
	require.Nil(t, res.CorrectivePurchase)
	assert.Equal(t, entity.RequestStatusEnviado, res.Request.Status)

	// El total estimado se preserva sin recalcular.
	assert.True(t, res.Request.TotalEstimatedCost.Equal(totalAntes))

	// Stock del CD debitado por línea.
	s1, _ := f.Stock.Get("item-1", "cd-1")
	s2, _ := f.Stock.Get("item-2", "cd-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(40)))
	assert.True(t, s2.Quantity.Equal(decimal.NewFromInt(44)))

	// Un registro en tránsito en-ruta por línea, hacia la unidad solicitante.
	transits, _ := f.Transit.ListByRequest(r.ID)
	require.Len(t, transits, 2)
	for _, tr := range transits {
		assert.Equal(t, entity.InTransitStatusEnRuta, tr.Status)
		assert.Equal(t, "cd-1", tr.FromUnitID)
		assert.Equal(t, "sede-1", tr.ToUnitID)
	}

	// Movimiento de envío por línea.
	require.Len(t, f.Movements.Movements, 2)
	for _, m := range f.Movements.Movements {
		assert.Equal(t, entity.MovementReasonEnvioSolicitud, m.Reason)
	}
}

func TestSend_FaltanteReportaTodoSinMutar(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	seedCDStock(f, "item-1", 3) // faltan 7
	seedCDStock(f, "item-2", 2) // faltan 4
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	aprobar(t, uc, r.ID)

	_, err := uc.Send(context.Background(), request.SendInput{RequestID: r.ID, UserID: "user-2"})

	var shortfall *domain.RequestShortfallError
	require.ErrorAs(t, err, &shortfall)
	// El detalle cubre todos los ítems con faltante, no solo el primero.
	require.Len(t, shortfall.Shortfalls, 2)
	byItem := map[string]domain.RequestShortfall{}
	for _, s := range shortfall.Shortfalls {
		byItem[s.ItemID] = s
	}
	assert.True(t, byItem["item-1"].Missing.Equal(decimal.NewFromInt(7)))
	assert.True(t, byItem["item-2"].Missing.Equal(decimal.NewFromInt(4)))

	// Nada mutado: ni stock, ni tránsito, ni estado.
	s1, _ := f.Stock.Get("item-1", "cd-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Empty(t, f.Transit.Records)
	assert.Empty(t, f.Movements.Movements)
	got, _ := uc.GetByID(r.ID)
	assert.Equal(t, entity.RequestStatusAprobado, got.Status)
}

func TestSend_CompraCorrectivaPorExactamenteLoFaltante(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	seedCDStock(f, "item-1", 3)  // faltan 7
	seedCDStock(f, "item-2", 50) // alcanza
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	aprobar(t, uc, r.ID)

	res, err := uc.Send(context.Background(), request.SendInput{
		RequestID:                r.ID,
		UserID:                   "user-2",
		CreateCorrectivePurchase: true,
	})
	require.NoError(t, err)
	require.NotNil(t, res.CorrectivePurchase)

	// La solicitud queda a la espera de la compra.
	assert.Equal(t, entity.RequestStatusAprobadoPendiente, res.Request.Status)

	// La compra correctiva cubre solo los ítems con faltante y por lo faltante exacto.
	p := res.CorrectivePurchase
	assert.Equal(t, "cd-1", p.UnitID)
	assert.Equal(t, r.ID, p.RequestID)
	assert.Equal(t, entity.PurchaseStatusPedidoRealizado, p.Status)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "item-1", p.Items[0].ItemID)
	assert.True(t, p.Items[0].Quantity.Equal(decimal.NewFromInt(7)))

	// El stock del CD no se toca en este camino.
	s1, _ := f.Stock.Get("item-1", "cd-1")
	s2, _ := f.Stock.Get("item-2", "cd-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, s2.Quantity.Equal(decimal.NewFromInt(50)))
	assert.Empty(t, f.Transit.Records)

	// Tras reabastecer el CD, el reintento de envío despacha normal.
	seedCDStock(f, "item-1", 20)
	res2, err := uc.Send(context.Background(), request.SendInput{RequestID: r.ID, UserID: "user-2"})
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusEnviado, res2.Request.Status)
}

func TestSend_EstadoNoEnviable(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)

	_, err := uc.Send(context.Background(), request.SendInput{RequestID: r.ID, UserID: "user-2"})
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te, "solicitado no es estado enviable")
}

func TestReceive_AcreditaDestinoYMarcaEntregado(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	seedCDStock(f, "item-1", 50)
	seedCDStock(f, "item-2", 50)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)
	aprobar(t, uc, r.ID)
	_, err := uc.Send(context.Background(), request.SendInput{RequestID: r.ID, UserID: "user-2"})
	require.NoError(t, err)

	received, err := uc.Receive(context.Background(), r.ID, "user-3")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusRecibido, received.Status)

	// Stock acreditado en la unidad solicitante.
	s1, _ := f.Stock.Get("item-1", "sede-1")
	s2, _ := f.Stock.Get("item-2", "sede-1")
	assert.True(t, s1.Quantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, s2.Quantity.Equal(decimal.NewFromInt(6)))

	// Todos los tránsitos entregados con fecha.
	transits, _ := f.Transit.ListByRequest(r.ID)
	for _, tr := range transits {
		assert.Equal(t, entity.InTransitStatusEntregado, tr.Status)
		assert.NotNil(t, tr.DeliveredAt)
	}

	// Recibir dos veces se rechaza.
	_, err = uc.Receive(context.Background(), r.ID, "user-3")
	var te *domain.TransitionError
	require.ErrorAs(t, err, &te)
}

func TestChangeStatus_NoPermiteEnviadoNiRecibido(t *testing.T) {
	f := testutil.NewFixture()
	seedWorld(f)
	uc := request.NewUseCase(f.Tx, f.Requests, f.Units, f.Items)
	r := crearSolicitud(t, uc)

	var te *domain.TransitionError
	err := uc.ChangeStatus(context.Background(), r.ID, entity.RequestStatusEnviado, "user-2")
	require.ErrorAs(t, err, &te)
	err = uc.ChangeStatus(context.Background(), r.ID, entity.RequestStatusRecibido, "user-2")
	require.ErrorAs(t, err, &te)
}
