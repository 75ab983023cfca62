package controller

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"eventos_backend/internals/features/events/events/dto"
	"eventos_backend/internals/features/events/events/model"
	helper "eventos_backend/internals/helpers"
)

// periodRange traduce el periodo (dia|semana|mes) a un rango [from, to).
func periodRange(period string, today time.Time) (time.Time, time.Time, bool) {
	y, m, d := today.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, today.Location())

	switch period {
	case "dia", "":
		return dayStart, dayStart.AddDate(0, 0, 1), true
	case "semana":
		// Lunes como inicio de semana
		offset := (int(dayStart.Weekday()) + 6) % 7
		weekStart := dayStart.AddDate(0, 0, -offset)
		return weekStart, weekStart.AddDate(0, 0, 7), true
	case "mes":
		monthStart := time.Date(y, m, 1, 0, 0, 0, 0, today.Location())
		return monthStart, monthStart.AddDate(0, 1, 0), true
	default: // "todo"
		return time.Time{}, time.Time{}, false
	}
}

// 🟢 GET /api/u/events/dashboard
// Solo lectura: el motor de estados corre en el scheduler, nunca aquí.
func (ctrl *EventController) Dashboard(c *fiber.Ctx) error {
	now := time.Now()
	y, m, _ := now.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	dayStart := time.Date(y, m, now.Day(), 0, 0, 0, 0, now.Location())

	base, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}

	type statRow struct {
		Total       int64
		Programados int64
		Finalizados int64
	}
	var stats statRow
	if err := base.
		Select("COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE event_status = 'programado') AS programados, " +
			"COUNT(*) FILTER (WHERE event_status = 'finalizado') AS finalizados").
		Where("event_starts_at >= ? AND event_starts_at < ?", monthStart, monthEnd).
		Scan(&stats).Error; err != nil {
		log.Printf("[ERROR] Dashboard stats: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron calcular las estadísticas")
	}

	var todayCount int64
	base2, _ := ctrl.scopedQuery(c)
	if err := base2.
		Where("event_starts_at >= ? AND event_starts_at < ?", dayStart, dayStart.AddDate(0, 0, 1)).
		Count(&todayCount).Error; err != nil {
		log.Printf("[ERROR] Dashboard hoy: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron calcular las estadísticas")
	}

	// Tarjetas filtradas por periodo + filtros del query
	var filters dto.EventFilterQuery
	if err := c.QueryParser(&filters); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtros inválidos")
	}

	cards, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}
	if from, to, bounded := periodRange(filters.Period, now); bounded {
		cards = cards.Where("event_starts_at >= ? AND event_starts_at < ?", from, to)
	}
	cards = applyFilters(cards, filters)

	var events []model.EventModel
	if err := cards.Order("event_starts_at ASC").Find(&events).Error; err != nil {
		log.Printf("[ERROR] Dashboard eventos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los eventos")
	}

	return helper.JsonOK(c, "Dashboard", fiber.Map{
		"month_total":       stats.Total,
		"month_programados": stats.Programados,
		"month_finalizados": stats.Finalizados,
		"today_count":       todayCount,
		"period":            filters.Period,
		"events":            dto.ToEventResponseList(events),
	})
}

// 🟢 GET /api/u/events/calendar?year=&month=
func (ctrl *EventController) Calendar(c *fiber.Ctx) error {
	now := time.Now()
	year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	q, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}

	var events []model.EventModel
	if err := q.
		Where("event_starts_at >= ? AND event_starts_at < ?", monthStart, monthEnd).
		Order("event_starts_at ASC").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Calendario: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los eventos del mes")
	}

	// Agrupar por día del mes
	byDay := map[string][]dto.EventResponse{}
	for i := range events {
		day := strconv.Itoa(events[i].EventStartsAt.Day())
		byDay[day] = append(byDay[day], *dto.ToEventResponse(&events[i]))
	}

	prevYear, prevMonth := year, month-1
	if prevMonth < 1 {
		prevMonth = 12
		prevYear--
	}
	nextYear, nextMonth := year, month+1
	if nextMonth > 12 {
		nextMonth = 1
		nextYear++
	}

	return helper.JsonOK(c, "Calendario de eventos", fiber.Map{
		"year":          year,
		"month":         month,
		"events_by_day": byDay,
		"prev":          fiber.Map{"year": prevYear, "month": prevMonth},
		"next":          fiber.Map{"year": nextYear, "month": nextMonth},
		"is_current":    year == now.Year() && month == int(now.Month()),
	})
}
