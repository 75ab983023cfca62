package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStatusPredicates(t *testing.T) {
	tests := []struct {
		status    Status
		valid     bool
		terminal  bool
		canCancel bool
	}{
		{StatusProgramado, true, false, true},
		{StatusRevisado, true, false, true},
		{StatusActivo, true, false, true},
		{StatusFinalizado, true, true, false},
		{StatusCancelado, true, true, false},
		{Status("pendiente"), false, false, false},
		{Status(""), false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, esperaba %v", got, tt.valid)
			}
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, esperaba %v", got, tt.terminal)
			}
			if got := tt.status.CanCancel(); got != tt.canCancel {
				t.Errorf("CanCancel() = %v, esperaba %v", got, tt.canCancel)
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusProgramado.Label(); got != "Programado" {
		t.Errorf("Label() = %q", got)
	}
	// Estados desconocidos regresan el valor crudo, nunca vacío.
	if got := Status("raro").Label(); got != "raro" {
		t.Errorf("Label() = %q", got)
	}
}

func TestEditableBy(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	ev := func(status Status) *EventModel {
		return &EventModel{
			EventID:       1,
			EventStatus:   status,
			EventCreatedBy: owner,
			EventStartsAt: time.Now(),
		}
	}

	tests := []struct {
		name    string
		status  Status
		userID  uuid.UUID
		isAdmin bool
		want    bool
	}{
		{"creador con programado", StatusProgramado, owner, false, true},
		{"creador con activo", StatusActivo, owner, false, false},
		{"creador con finalizado", StatusFinalizado, owner, false, false},
		{"otro captura con programado", StatusProgramado, other, false, false},
		{"admin con programado", StatusProgramado, other, true, true},
		{"admin con activo", StatusActivo, other, true, true},
		{"admin con finalizado", StatusFinalizado, other, true, false},
		{"admin con cancelado", StatusCancelado, other, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev(tt.status).EditableBy(tt.userID, tt.isAdmin); got != tt.want {
				t.Errorf("EditableBy() = %v, esperaba %v", got, tt.want)
			}
		})
	}
}
