package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/workflow"
)

func TestCanPurchaseTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		permite bool
	}{
		{"avance simple", entity.PurchaseStatusPedidoRealizado, entity.PurchaseStatusEnCotizacion, true},
		{"salto hacia adelante", entity.PurchaseStatusPedidoRealizado, entity.PurchaseStatusEsperandoEntrega, true},
		{"avance a enviado", entity.PurchaseStatusLlegoAlCD, entity.PurchaseStatusEnviado, true},
		{"hacia finalizado", entity.PurchaseStatusEnviado, entity.PurchaseStatusFinalizado, true},
		{"retroceso", entity.PurchaseStatusEsperandoEntrega, entity.PurchaseStatusEnCotizacion, false},
		{"mismo estado", entity.PurchaseStatusEnCotizacion, entity.PurchaseStatusEnCotizacion, false},
		{"finalizado es terminal", entity.PurchaseStatusFinalizado, entity.PurchaseStatusError, false},
		{"origen desconocido", "inventado", entity.PurchaseStatusEnCotizacion, false},
		{"destino desconocido", entity.PurchaseStatusPedidoRealizado, "inventado", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := workflow.CanPurchaseTransition(tc.from, tc.to)
			if tc.permite {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var te *domain.TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "purchase", te.Entity)
			assert.Equal(t, tc.from, te.From)
			assert.Equal(t, tc.to, te.To)
		})
	}
}

func TestCanRequestTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    string
		to      string
		permite bool
	}{
		{"a análisis", entity.RequestStatusSolicitado, entity.RequestStatusEnAnalisis, true},
		{"aprobar", entity.RequestStatusEnAnalisis, entity.RequestStatusAprobado, true},
		{"rechazar", entity.RequestStatusEnAnalisis, entity.RequestStatusRechazado, true},
		{"envío directo desde aprobado", entity.RequestStatusAprobado, entity.RequestStatusEnviado, true},
		{"pendiente de compra vuelve a aprobado", entity.RequestStatusAprobadoPendiente, entity.RequestStatusAprobado, true},
		{"envío falla a error", entity.RequestStatusEnPreparacion, entity.RequestStatusError, true},
		{"recepción", entity.RequestStatusEnviado, entity.RequestStatusRecibido, true},
		{"cierre en unidad", entity.RequestStatusRecibido, entity.RequestStatusAprobadoUnidad, true},
		{"reintento desde error", entity.RequestStatusError, entity.RequestStatusEnPreparacion, true},
		{"saltar análisis", entity.RequestStatusSolicitado, entity.RequestStatusAprobado, false},
		{"rechazado es terminal", entity.RequestStatusRechazado, entity.RequestStatusEnAnalisis, false},
		{"cancelado es terminal", entity.RequestStatusCancelado, entity.RequestStatusSolicitado, false},
		{"aprobado-unidad es terminal", entity.RequestStatusAprobadoUnidad, entity.RequestStatusEnviado, false},
		{"enviado no se cancela", entity.RequestStatusEnviado, entity.RequestStatusCancelado, false},
		{"estado desconocido", "inventado", entity.RequestStatusEnAnalisis, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := workflow.CanRequestTransition(tc.from, tc.to)
			if tc.permite {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var te *domain.TransitionError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, "request", te.Entity)
		})
	}
}

func TestCanSendRequest(t *testing.T) {
	assert.NoError(t, workflow.CanSendRequest(entity.RequestStatusAprobado))
	assert.NoError(t, workflow.CanSendRequest(entity.RequestStatusEnPreparacion))
	assert.NoError(t, workflow.CanSendRequest(entity.RequestStatusAprobadoPendiente))

	err := workflow.CanSendRequest(entity.RequestStatusSolicitado)
	require.Error(t, err, "una solicitud sin aprobar no puede enviarse")
	err = workflow.CanSendRequest(entity.RequestStatusRecibido)
	require.Error(t, err, "una solicitud recibida no puede reenviarse")
}
