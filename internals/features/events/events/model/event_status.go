package model

// Status es el estado de vida de un evento.
type Status string

const (
	StatusProgramado Status = "programado"
	StatusRevisado   Status = "revisado"
	StatusActivo     Status = "activo"
	StatusFinalizado Status = "finalizado"
	StatusCancelado  Status = "cancelado"
)

// Etiquetas legibles por estado (para exportaciones y respuestas).
var statusLabels = map[Status]string{
	StatusProgramado: "Programado",
	StatusRevisado:   "Revisado",
	StatusActivo:     "Activo",
	StatusFinalizado: "Finalizado",
	StatusCancelado:  "Cancelado",
}

func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsTerminal: finalizado y cancelado no admiten más transiciones.
func (s Status) IsTerminal() bool {
	return s == StatusFinalizado || s == StatusCancelado
}

// CanCancel: un admin solo puede cancelar desde programado, revisado o activo.
func (s Status) CanCancel() bool {
	switch s {
	case StatusProgramado, StatusRevisado, StatusActivo:
		return true
	}
	return false
}
