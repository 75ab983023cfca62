package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"eventos_backend/internals/features/events/events/model"
	"eventos_backend/internals/features/events/events/service"
)

// EventStatusRepository implementa service.EventStatusStore sobre GORM.
type EventStatusRepository struct {
	DB *gorm.DB
}

func NewEventStatusRepository(db *gorm.DB) *EventStatusRepository {
	return &EventStatusRepository{DB: db}
}

func (r *EventStatusRepository) DueForActivation(ctx context.Context, now time.Time) ([]model.EventModel, error) {
	var events []model.EventModel
	err := r.DB.WithContext(ctx).
		Where("event_status = ? AND event_starts_at <= ? AND event_ends_at > ?",
			model.StatusProgramado, now, now).
		Find(&events).Error
	return events, err
}

func (r *EventStatusRepository) DueForCompletion(ctx context.Context, now time.Time) ([]model.EventModel, error) {
	var events []model.EventModel
	err := r.DB.WithContext(ctx).
		Where("event_status IN ? AND event_ends_at <= ?",
			[]model.Status{model.StatusProgramado, model.StatusActivo}, now).
		Find(&events).Error
	return events, err
}

func (r *EventStatusRepository) FindEvent(ctx context.Context, eventID int64) (*model.EventModel, error) {
	var ev model.EventModel
	err := r.DB.WithContext(ctx).Where("event_id = ?", eventID).First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// Apply ejecuta el update condicional y la fila de bitácora como una sola
// unidad. Si el UPDATE no afecta filas (otro proceso ya movió el evento),
// no se inserta log y se devuelve false.
func (r *EventStatusRepository) Apply(ctx context.Context, t service.Transition) (bool, error) {
	applied := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.EventModel{}).
			Where("event_id = ? AND event_status = ?", t.EventID, t.From).
			Updates(map[string]interface{}{
				"event_status":     t.To,
				"event_updated_at": t.ChangedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Carrera perdida: no registrar nada.
			return nil
		}

		prev := t.From
		logRow := model.EventStatusLogModel{
			EventStatusLogEventID:   t.EventID,
			EventStatusLogPrevious:  &prev,
			EventStatusLogNew:       t.To,
			EventStatusLogUserID:    t.UserID,
			EventStatusLogComment:   t.Comment,
			EventStatusLogAutomatic: t.Automatic,
			EventStatusLogChangedAt: t.ChangedAt,
		}
		if err := tx.Create(&logRow).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}
