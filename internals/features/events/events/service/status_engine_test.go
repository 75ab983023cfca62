package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"eventos_backend/internals/features/events/events/model"
)

// fakeStore implementa EventStatusStore en memoria con la misma semántica
// que el repositorio real: update condicional por estado + bitácora solo
// cuando el update aplicó.
type fakeStore struct {
	events   map[int64]*model.EventModel
	logs     []Transition
	applyErr map[int64]error
}

func newFakeStore(events ...*model.EventModel) *fakeStore {
	s := &fakeStore{
		events:   map[int64]*model.EventModel{},
		applyErr: map[int64]error{},
	}
	for _, ev := range events {
		s.events[ev.EventID] = ev
	}
	return s
}

func (s *fakeStore) DueForActivation(_ context.Context, now time.Time) ([]model.EventModel, error) {
	var out []model.EventModel
	for _, ev := range s.events {
		if ev.EventStatus == model.StatusProgramado &&
			!ev.EventStartsAt.After(now) &&
			ev.EventEndsAt != nil && ev.EventEndsAt.After(now) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (s *fakeStore) DueForCompletion(_ context.Context, now time.Time) ([]model.EventModel, error) {
	var out []model.EventModel
	for _, ev := range s.events {
		if (ev.EventStatus == model.StatusProgramado || ev.EventStatus == model.StatusActivo) &&
			ev.EventEndsAt != nil && !ev.EventEndsAt.After(now) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

func (s *fakeStore) FindEvent(_ context.Context, eventID int64) (*model.EventModel, error) {
	ev, ok := s.events[eventID]
	if !ok {
		return nil, nil
	}
	cp := *ev
	return &cp, nil
}

func (s *fakeStore) Apply(_ context.Context, t Transition) (bool, error) {
	if err, ok := s.applyErr[t.EventID]; ok {
		return false, err
	}
	ev, ok := s.events[t.EventID]
	if !ok || ev.EventStatus != t.From {
		// Update condicional sin filas afectadas: sin bitácora.
		return false, nil
	}
	ev.EventStatus = t.To
	s.logs = append(s.logs, t)
	return true, nil
}

func (s *fakeStore) logsFor(eventID int64) []Transition {
	var out []Transition
	for _, l := range s.logs {
		if l.EventID == eventID {
			out = append(out, l)
		}
	}
	return out
}

func event(id int64, status model.Status, startsAt, endsAt time.Time) *model.EventModel {
	return &model.EventModel{
		EventID:       id,
		EventName:     "Evento de prueba",
		EventStatus:   status,
		EventStartsAt: startsAt,
		EventEndsAt:   &endsAt,
	}
}

func TestAdvanceStatusesActivation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		// Ya inició y aún no termina → activo
		event(1, model.StatusProgramado, now.Add(-time.Hour), now.Add(2*time.Hour)),
		// Todavía no inicia → sin cambio
		event(2, model.StatusProgramado, now.Add(time.Hour), now.Add(3*time.Hour)),
		// Cancelado nunca se toca
		event(3, model.StatusCancelado, now.Add(-time.Hour), now.Add(2*time.Hour)),
	)
	engine := NewStatusEngine(store)

	result, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Activated != 1 || result.Finished != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v, esperaba 1 activado", result)
	}

	if got := store.events[1].EventStatus; got != model.StatusActivo {
		t.Errorf("evento 1: estado = %q, esperaba activo", got)
	}
	if got := store.events[2].EventStatus; got != model.StatusProgramado {
		t.Errorf("evento 2: estado = %q, esperaba programado", got)
	}
	if got := store.events[3].EventStatus; got != model.StatusCancelado {
		t.Errorf("evento 3: estado = %q, esperaba cancelado", got)
	}

	logs := store.logsFor(1)
	if len(logs) != 1 {
		t.Fatalf("evento 1: %d filas de bitácora, esperaba 1", len(logs))
	}
	l := logs[0]
	if l.From != model.StatusProgramado || l.To != model.StatusActivo {
		t.Errorf("bitácora = %q→%q, esperaba programado→activo", l.From, l.To)
	}
	if !l.Automatic {
		t.Error("la transición del motor debe registrarse como automática")
	}
	if l.UserID != nil {
		t.Error("la transición automática no lleva usuario")
	}
	if l.Comment != CommentStarted {
		t.Errorf("comentario = %q", l.Comment)
	}
	if !l.ChangedAt.Equal(now) {
		t.Errorf("ChangedAt = %v, esperaba el now capturado %v", l.ChangedAt, now)
	}
}

func TestAdvanceStatusesCompletion(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		// Activo que ya terminó → finalizado
		event(1, model.StatusActivo, now.Add(-3*time.Hour), now.Add(-time.Minute)),
		// Activo en curso → sin cambio
		event(2, model.StatusActivo, now.Add(-time.Hour), now.Add(time.Hour)),
	)
	engine := NewStatusEngine(store)

	result, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Finished != 1 || result.Activated != 0 {
		t.Fatalf("result = %+v, esperaba 1 finalizado", result)
	}
	if got := store.events[1].EventStatus; got != model.StatusFinalizado {
		t.Errorf("evento 1: estado = %q, esperaba finalizado", got)
	}
	if got := store.events[2].EventStatus; got != model.StatusActivo {
		t.Errorf("evento 2: estado = %q, esperaba activo", got)
	}
	if l := store.logsFor(1); len(l) != 1 || l[0].Comment != CommentConcluded {
		t.Errorf("bitácora del evento 1 = %+v", l)
	}
}

// Un evento cuya ventana completa ya pasó salta programado→finalizado
// directo, sin fila 'activo' fantasma en la bitácora.
func TestAdvanceStatusesSkipsStaleActivation(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		event(1, model.StatusProgramado, now.Add(-5*time.Hour), now.Add(-2*time.Hour)),
	)
	engine := NewStatusEngine(store)

	result, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Activated != 0 || result.Finished != 1 {
		t.Fatalf("result = %+v, esperaba solo 1 finalizado", result)
	}
	if got := store.events[1].EventStatus; got != model.StatusFinalizado {
		t.Fatalf("estado = %q, esperaba finalizado", got)
	}

	logs := store.logsFor(1)
	if len(logs) != 1 {
		t.Fatalf("%d filas de bitácora, esperaba exactamente 1", len(logs))
	}
	if logs[0].From != model.StatusProgramado || logs[0].To != model.StatusFinalizado {
		t.Errorf("bitácora = %q→%q, esperaba programado→finalizado", logs[0].From, logs[0].To)
	}
}

func TestAdvanceStatusesIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		event(1, model.StatusProgramado, now.Add(-time.Hour), now.Add(2*time.Hour)),
		event(2, model.StatusActivo, now.Add(-3*time.Hour), now.Add(-time.Minute)),
	)
	engine := NewStatusEngine(store)

	first, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("primera corrida: %v", err)
	}
	if first.Activated != 1 || first.Finished != 1 {
		t.Fatalf("primera corrida = %+v", first)
	}

	second, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("segunda corrida: %v", err)
	}
	if second.Activated != 0 || second.Finished != 0 || second.Failed != 0 {
		t.Fatalf("segunda corrida = %+v, esperaba cero transiciones", second)
	}
	if len(store.logs) != 2 {
		t.Fatalf("%d filas de bitácora tras dos corridas, esperaba 2", len(store.logs))
	}
}

// Un evento que falla no detiene el barrido; los demás avanzan y el fallo
// queda contado.
func TestAdvanceStatusesFailureAccounting(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		event(1, model.StatusProgramado, now.Add(-time.Hour), now.Add(2*time.Hour)),
		event(2, model.StatusProgramado, now.Add(-time.Hour), now.Add(2*time.Hour)),
	)
	store.applyErr[1] = errors.New("deadlock simulado")
	engine := NewStatusEngine(store)

	result, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Failed != 1 {
		t.Errorf("Failed = %d, esperaba 1", result.Failed)
	}
	if result.Activated != 1 {
		t.Errorf("Activated = %d, esperaba 1 (el evento sano avanza)", result.Activated)
	}
	if got := store.events[1].EventStatus; got != model.StatusProgramado {
		t.Errorf("el evento fallido no debe cambiar de estado, quedó %q", got)
	}
}

// Una carrera perdida (update condicional sin filas) no cuenta como avance
// ni como fallo, y no deja bitácora.
func TestAdvanceStatusesLostRace(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		event(1, model.StatusProgramado, now.Add(-time.Hour), now.Add(2*time.Hour)),
	)

	// Otro proceso canceló el evento entre el SELECT y el UPDATE.
	snapshot, err := store.DueForActivation(context.Background(), now)
	if err != nil || len(snapshot) != 1 {
		t.Fatalf("precondición: %v (%d eventos)", err, len(snapshot))
	}
	store.events[1].EventStatus = model.StatusCancelado

	raced := &racingStore{fakeStore: store, snapshot: snapshot}
	result, err := NewStatusEngine(raced).AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Activated != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v, la carrera perdida no debe contarse", result)
	}
	if len(store.logs) != 0 {
		t.Fatalf("la carrera perdida no debe dejar bitácora, hay %d filas", len(store.logs))
	}
}

// racingStore devuelve un snapshot viejo del SELECT para simular la ventana
// entre lectura y update.
type racingStore struct {
	*fakeStore
	snapshot []model.EventModel
}

func (s *racingStore) DueForActivation(_ context.Context, _ time.Time) ([]model.EventModel, error) {
	return s.snapshot, nil
}

func (s *racingStore) DueForCompletion(_ context.Context, _ time.Time) ([]model.EventModel, error) {
	return nil, nil
}

// El motor nunca toca revisado: no lo activa ni lo finaliza, aunque su
// ventana ya haya vencido. Salir de revisado es siempre manual.
func TestAdvanceStatusesIgnoresRevisado(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		// En ventana: no se activa
		event(1, model.StatusRevisado, now.Add(-time.Hour), now.Add(2*time.Hour)),
		// Ventana vencida: no se finaliza
		event(2, model.StatusRevisado, now.Add(-5*time.Hour), now.Add(-2*time.Hour)),
	)
	engine := NewStatusEngine(store)

	result, err := engine.AdvanceStatuses(context.Background(), now)
	if err != nil {
		t.Fatalf("AdvanceStatuses: %v", err)
	}
	if result.Activated != 0 || result.Finished != 0 || result.Failed != 0 {
		t.Fatalf("result = %+v, esperaba cero transiciones", result)
	}
	for id := int64(1); id <= 2; id++ {
		if got := store.events[id].EventStatus; got != model.StatusRevisado {
			t.Errorf("evento %d: estado = %q, esperaba revisado", id, got)
		}
	}
	if len(store.logs) != 0 {
		t.Fatalf("revisado no debe dejar bitácora, hay %d filas", len(store.logs))
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	actor := uuid.New()

	tests := []struct {
		name    string
		status  model.Status
		wantErr bool
	}{
		{"desde programado", model.StatusProgramado, false},
		{"desde revisado", model.StatusRevisado, false},
		{"desde activo", model.StatusActivo, false},
		{"desde finalizado", model.StatusFinalizado, true},
		{"desde cancelado", model.StatusCancelado, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(
				event(7, tt.status, now.Add(-time.Hour), now.Add(time.Hour)),
			)
			engine := NewStatusEngine(store)

			err := engine.Cancel(context.Background(), 7, actor, now)
			if tt.wantErr {
				var illegal *IllegalTransitionError
				if !errors.As(err, &illegal) {
					t.Fatalf("err = %v, esperaba IllegalTransitionError", err)
				}
				if illegal.From != tt.status {
					t.Errorf("From = %q, esperaba %q", illegal.From, tt.status)
				}
				if len(store.logs) != 0 {
					t.Error("un rechazo no debe dejar bitácora")
				}
				return
			}

			if err != nil {
				t.Fatalf("Cancel: %v", err)
			}
			if got := store.events[7].EventStatus; got != model.StatusCancelado {
				t.Fatalf("estado = %q, esperaba cancelado", got)
			}
			logs := store.logsFor(7)
			if len(logs) != 1 {
				t.Fatalf("%d filas de bitácora, esperaba 1", len(logs))
			}
			l := logs[0]
			if l.Automatic {
				t.Error("la cancelación manual no debe marcarse automática")
			}
			if l.UserID == nil || *l.UserID != actor {
				t.Errorf("UserID = %v, esperaba el admin %s", l.UserID, actor)
			}
			if l.Comment != CommentCancelled {
				t.Errorf("comentario = %q", l.Comment)
			}
			if !l.ChangedAt.Equal(now) {
				t.Errorf("ChangedAt = %v, esperaba el now inyectado %v", l.ChangedAt, now)
			}
		})
	}
}

func TestCancelEventNotFound(t *testing.T) {
	engine := NewStatusEngine(newFakeStore())
	err := engine.Cancel(context.Background(), 99, uuid.New(), time.Now())
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, esperaba ErrEventNotFound", err)
	}
}

// El cambio manual de estado por admin usa la misma unidad atómica que el
// motor: o queda estado nuevo + bitácora, o no queda nada.
func TestSetStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	actor := uuid.New()

	store := newFakeStore(
		event(4, model.StatusProgramado, now.Add(time.Hour), now.Add(3*time.Hour)),
	)
	engine := NewStatusEngine(store)

	if err := engine.SetStatus(context.Background(), 4, model.StatusProgramado, model.StatusRevisado, actor, now); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if got := store.events[4].EventStatus; got != model.StatusRevisado {
		t.Fatalf("estado = %q, esperaba revisado", got)
	}

	logs := store.logsFor(4)
	if len(logs) != 1 {
		t.Fatalf("%d filas de bitácora, esperaba 1", len(logs))
	}
	l := logs[0]
	if l.From != model.StatusProgramado || l.To != model.StatusRevisado {
		t.Errorf("bitácora = %q→%q, esperaba programado→revisado", l.From, l.To)
	}
	if l.Automatic {
		t.Error("el cambio manual no debe marcarse automático")
	}
	if l.UserID == nil || *l.UserID != actor {
		t.Errorf("UserID = %v, esperaba el admin %s", l.UserID, actor)
	}
	if l.Comment != CommentAdminChange {
		t.Errorf("comentario = %q", l.Comment)
	}
	if !l.ChangedAt.Equal(now) {
		t.Errorf("ChangedAt = %v, esperaba %v", l.ChangedAt, now)
	}
}

// Si el scheduler movió el evento entre la lectura del admin y su update,
// el cambio manual se rechaza con conflicto y no deja bitácora con un
// `previous` viejo.
func TestSetStatusLostRace(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	store := newFakeStore(
		event(4, model.StatusActivo, now.Add(-time.Hour), now.Add(time.Hour)),
	)
	engine := NewStatusEngine(store)

	// El admin leyó 'programado', pero el motor ya activó el evento.
	err := engine.SetStatus(context.Background(), 4, model.StatusProgramado, model.StatusRevisado, uuid.New(), now)
	if !errors.Is(err, ErrTransitionConflict) {
		t.Fatalf("err = %v, esperaba ErrTransitionConflict", err)
	}
	if got := store.events[4].EventStatus; got != model.StatusActivo {
		t.Errorf("estado = %q, el conflicto no debe mover el evento", got)
	}
	if len(store.logs) != 0 {
		t.Fatalf("la carrera perdida no debe dejar bitácora, hay %d filas", len(store.logs))
	}
}

func TestSetStatusEventNotFound(t *testing.T) {
	engine := NewStatusEngine(newFakeStore())
	err := engine.SetStatus(context.Background(), 99, model.StatusProgramado, model.StatusRevisado, uuid.New(), time.Now())
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, esperaba ErrEventNotFound", err)
	}
}

// Si el evento pasó a terminal entre la lectura y el update, Cancel debe
// reportar la transición ilegal con el estado fresco, no un conflicto vago.
func TestCancelLostRaceToTerminal(t *testing.T) {
	now := time.Now()
	store := newFakeStore(
		event(5, model.StatusActivo, now.Add(-time.Hour), now.Add(time.Hour)),
	)
	raced := &cancelRaceStore{fakeStore: store}
	engine := NewStatusEngine(raced)

	err := engine.Cancel(context.Background(), 5, uuid.New(), now)
	var illegal *IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("err = %v, esperaba IllegalTransitionError", err)
	}
	if illegal.From != model.StatusFinalizado {
		t.Errorf("From = %q, esperaba el estado fresco finalizado", illegal.From)
	}
	if len(store.logs) != 0 {
		t.Error("la carrera perdida no debe dejar bitácora")
	}
}

// cancelRaceStore finaliza el evento justo antes del Apply, como lo haría
// el scheduler corriendo en paralelo.
type cancelRaceStore struct {
	*fakeStore
}

func (s *cancelRaceStore) Apply(ctx context.Context, t Transition) (bool, error) {
	s.events[t.EventID].EventStatus = model.StatusFinalizado
	return s.fakeStore.Apply(ctx, t)
}
