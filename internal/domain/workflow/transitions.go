// Package workflow define las máquinas de estado de Compra y Solicitud como
// tablas puras de transición, sin I/O. Los casos de uso las consultan antes de
// mutar nada: una transición ilegal se rechaza sin tocar los ledgers.
package workflow

import (
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// purchaseOrder índice de avance de la compra. Toda transición debe ir hacia
// adelante; "finalizado" solo se alcanza por el caso de uso de finalización.
var purchaseOrder = map[string]int{
	entity.PurchaseStatusPedidoRealizado:  0,
	entity.PurchaseStatusEnCotizacion:     1,
	entity.PurchaseStatusEsperandoEntrega: 2,
	entity.PurchaseStatusLlegoAlCD:        3,
	entity.PurchaseStatusEnviado:          4,
	entity.PurchaseStatusError:            5,
	entity.PurchaseStatusFinalizado:       6,
}

// CanPurchaseTransition valida un cambio de estado de compra sin efectos.
// Permite avanzar hacia "finalizado"; el caso de uso de finalización es el único
// caller que pasa ese destino, porque arrastra los efectos de ledger.
func CanPurchaseTransition(from, to string) error {
	fi, ok := purchaseOrder[from]
	if !ok {
		return &domain.TransitionError{Entity: "purchase", From: from, To: to}
	}
	ti, ok := purchaseOrder[to]
	if !ok {
		return &domain.TransitionError{Entity: "purchase", From: from, To: to}
	}
	if from == entity.PurchaseStatusFinalizado {
		// Terminal: ninguna mutación posterior.
		return &domain.TransitionError{Entity: "purchase", From: from, To: to}
	}
	if ti <= fi {
		return &domain.TransitionError{Entity: "purchase", From: from, To: to}
	}
	return nil
}

// requestTransitions transiciones permitidas de Solicitud. Los estados
// rechazado, cancelado y aprobado-unidad son terminales.
var requestTransitions = map[string][]string{
	entity.RequestStatusSolicitado: {
		entity.RequestStatusEnAnalisis,
		entity.RequestStatusCancelado,
	},
	entity.RequestStatusEnAnalisis: {
		entity.RequestStatusAprobado,
		entity.RequestStatusRechazado,
		entity.RequestStatusCancelado,
	},
	entity.RequestStatusAprobado: {
		entity.RequestStatusEnPreparacion,
		entity.RequestStatusAprobadoPendiente,
		entity.RequestStatusEnviado,
		entity.RequestStatusCancelado,
	},
	entity.RequestStatusAprobadoPendiente: {
		entity.RequestStatusAprobado,
		entity.RequestStatusEnPreparacion,
		entity.RequestStatusEnviado,
		entity.RequestStatusCancelado,
	},
	entity.RequestStatusEnPreparacion: {
		entity.RequestStatusEnviado,
		entity.RequestStatusAprobadoPendiente,
		entity.RequestStatusError,
		entity.RequestStatusCancelado,
	},
	entity.RequestStatusEnviado: {
		entity.RequestStatusRecibido,
		entity.RequestStatusError,
	},
	entity.RequestStatusRecibido: {
		entity.RequestStatusAprobadoUnidad,
	},
	entity.RequestStatusError: {
		entity.RequestStatusEnPreparacion,
		entity.RequestStatusCancelado,
	},
}

// CanRequestTransition valida un cambio de estado de solicitud sin efectos.
func CanRequestTransition(from, to string) error {
	allowed, ok := requestTransitions[from]
	if !ok {
		// Estado terminal o desconocido: nada sale de ahí.
		return &domain.TransitionError{Entity: "request", From: from, To: to}
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return &domain.TransitionError{Entity: "request", From: from, To: to}
}

// CanSendRequest indica si desde el estado actual puede intentarse el envío.
func CanSendRequest(from string) error {
	return CanRequestTransition(from, entity.RequestStatusEnviado)
}
