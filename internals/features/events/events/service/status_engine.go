package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"eventos_backend/internals/features/events/events/model"
)

// Comentarios de bitácora por transición.
const (
	CommentStarted     = "El evento ha iniciado."
	CommentConcluded   = "El evento ha concluido."
	CommentCancelled   = "Evento cancelado manualmente por administrador"
	CommentAdminChange = "Estado modificado por administrador"
)

var ErrEventNotFound = errors.New("evento no encontrado")

// ErrTransitionConflict: otro proceso movió el evento entre la lectura y el
// update condicional. Reintentar es seguro.
var ErrTransitionConflict = errors.New("el evento cambió de estado, intenta de nuevo")

// IllegalTransitionError: se intentó cancelar desde un estado terminal.
type IllegalTransitionError struct {
	EventID int64
	From    model.Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("no se puede cancelar el evento %d en estado %q", e.EventID, e.From)
}

// Transition es la unidad estado+bitácora que el store aplica de forma
// atómica: UPDATE condicional (status = From) + INSERT de la fila de log en
// una sola transacción. Si el update afecta cero filas no se inserta log.
type Transition struct {
	EventID   int64
	From      model.Status
	To        model.Status
	Comment   string
	Automatic bool
	UserID    *uuid.UUID
	ChangedAt time.Time
}

// EventStatusStore es lo único que el motor necesita de la persistencia.
type EventStatusStore interface {
	// DueForActivation: programado AND starts_at <= now AND ends_at > now.
	DueForActivation(ctx context.Context, now time.Time) ([]model.EventModel, error)
	// DueForCompletion: status IN (programado, activo) AND ends_at <= now.
	DueForCompletion(ctx context.Context, now time.Time) ([]model.EventModel, error)
	FindEvent(ctx context.Context, eventID int64) (*model.EventModel, error)
	// Apply devuelve false (sin error) cuando el update condicional no
	// afectó filas; en ese caso no debe quedar fila de bitácora.
	Apply(ctx context.Context, t Transition) (bool, error)
}

type AdvanceResult struct {
	Activated int `json:"activated"`
	Finished  int `json:"finished"`
	Failed    int `json:"failed"`
}

// StatusEngine decide y aplica las transiciones automáticas de estado.
// No manda notificaciones ni toca nada más; eso es de las capas que lo
// invocan.
type StatusEngine struct {
	store EventStatusStore
}

func NewStatusEngine(store EventStatusStore) *StatusEngine {
	return &StatusEngine{store: store}
}

// AdvanceStatuses corre las dos fases con un solo `now` capturado. El orden
// es fijo: activación antes de cierre, para que un evento cuya ventana ya
// pasó por completo quede programado→finalizado sin fila 'activo' fantasma.
// Correrlo dos veces sin que avance el reloj no produce transiciones extra.
func (e *StatusEngine) AdvanceStatuses(ctx context.Context, now time.Time) (AdvanceResult, error) {
	var result AdvanceResult

	// Fase 1: programado → activo
	toActivate, err := e.store.DueForActivation(ctx, now)
	if err != nil {
		return result, fmt.Errorf("seleccionando eventos por activar: %w", err)
	}
	for _, ev := range toActivate {
		ok, err := e.store.Apply(ctx, Transition{
			EventID:   ev.EventID,
			From:      model.StatusProgramado,
			To:        model.StatusActivo,
			Comment:   CommentStarted,
			Automatic: true,
			ChangedAt: now,
		})
		if err != nil {
			result.Failed++
			log.Printf("[ENGINE] error al activar evento %d: %v", ev.EventID, err)
			continue
		}
		if ok {
			result.Activated++
		}
	}

	// Fase 2: programado|activo → finalizado
	toFinish, err := e.store.DueForCompletion(ctx, now)
	if err != nil {
		return result, fmt.Errorf("seleccionando eventos por finalizar: %w", err)
	}
	for _, ev := range toFinish {
		ok, err := e.store.Apply(ctx, Transition{
			EventID:   ev.EventID,
			From:      ev.EventStatus, // estado previo a ESTA fase
			To:        model.StatusFinalizado,
			Comment:   CommentConcluded,
			Automatic: true,
			ChangedAt: now,
		})
		if err != nil {
			result.Failed++
			log.Printf("[ENGINE] error al finalizar evento %d: %v", ev.EventID, err)
			continue
		}
		if ok {
			result.Finished++
		}
	}

	return result, nil
}

// Cancel es la única transición manual implementada: un admin manda un
// evento programado, revisado o activo a cancelado. Desde un estado
// terminal se rechaza con IllegalTransitionError, nunca se ignora.
func (e *StatusEngine) Cancel(ctx context.Context, eventID int64, actorID uuid.UUID, now time.Time) error {
	ev, err := e.store.FindEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return ErrEventNotFound
	}
	if !ev.EventStatus.CanCancel() {
		return &IllegalTransitionError{EventID: eventID, From: ev.EventStatus}
	}

	ok, err := e.store.Apply(ctx, Transition{
		EventID:   eventID,
		From:      ev.EventStatus,
		To:        model.StatusCancelado,
		Comment:   CommentCancelled,
		Automatic: false,
		UserID:    &actorID,
		ChangedAt: now,
	})
	if err != nil {
		return err
	}
	if !ok {
		// Perdimos la carrera contra el motor u otro admin.
		if current, ferr := e.store.FindEvent(ctx, eventID); ferr == nil && current != nil && !current.EventStatus.CanCancel() {
			return &IllegalTransitionError{EventID: eventID, From: current.EventStatus}
		}
		return ErrTransitionConflict
	}
	return nil
}

// SetStatus aplica el cambio manual de estado de un admin con la misma
// unidad atómica del motor: UPDATE condicional contra el estado esperado +
// fila de bitácora en una sola transacción. Si otro proceso movió el evento
// primero, no queda bitácora y se reporta el conflicto.
func (e *StatusEngine) SetStatus(ctx context.Context, eventID int64, from, to model.Status, actorID uuid.UUID, now time.Time) error {
	ok, err := e.store.Apply(ctx, Transition{
		EventID:   eventID,
		From:      from,
		To:        to,
		Comment:   CommentAdminChange,
		Automatic: false,
		UserID:    &actorID,
		ChangedAt: now,
	})
	if err != nil {
		return err
	}
	if !ok {
		if current, ferr := e.store.FindEvent(ctx, eventID); ferr == nil && current == nil {
			return ErrEventNotFound
		}
		return ErrTransitionConflict
	}
	return nil
}
