package controller

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"eventos_backend/internals/features/events/events/dto"
	"eventos_backend/internals/features/events/events/model"
	helper "eventos_backend/internals/helpers"
)

// 🟢 GET /api/u/events/export
// Exporta a Excel la misma selección que ve el dashboard (mismos filtros).
func (ctrl *EventController) ExportEventsExcel(c *fiber.Ctx) error {
	var filters dto.EventFilterQuery
	if err := c.QueryParser(&filters); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Filtros inválidos")
	}

	q, err := ctrl.scopedQuery(c)
	if err != nil {
		return err
	}
	now := time.Now()
	if from, to, bounded := periodRange(filters.Period, now); bounded {
		q = q.Where("event_starts_at >= ? AND event_starts_at < ?", from, to)
	}
	q = applyFilters(q, filters)

	var events []model.EventModel
	if err := q.
		Preload("Creator").
		Order("event_starts_at ASC").
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] Export eventos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudieron leer los eventos")
	}

	// Nombres de municipios para la columna (un solo query al catálogo)
	muniNames := map[int]string{}
	{
		type muniRow struct {
			MunicipalityID   int
			MunicipalityName string
		}
		var rows []muniRow
		if err := ctrl.DB.Table("municipalities").Find(&rows).Error; err == nil {
			for _, r := range rows {
				muniNames[r.MunicipalityID] = r.MunicipalityName
			}
		}
	}
	agencyNames := map[int]string{}
	{
		type agencyRow struct {
			AgencyID   int
			AgencyName string
		}
		var rows []agencyRow
		if err := ctrl.DB.Table("agencies").Find(&rows).Error; err == nil {
			for _, r := range rows {
				agencyNames[r.AgencyID] = r.AgencyName
			}
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Eventos"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Folio", "Nombre del Evento", "Fecha Inicio", "Fecha Fin", "Lugar", "Municipio", "Dependencia", "Estado"}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"006554"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo preparar el archivo")
	}

	widths := make([]int, len(headers))
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		widths[col] = len(h)
	}

	setCell := func(row, col int, value interface{}) {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, value)
		if s := fmt.Sprintf("%v", value); len(s) > widths[col] {
			widths[col] = len(s)
		}
	}

	for i := range events {
		ev := &events[i]
		row := i + 2

		endStr := ""
		if ev.EventEndsAt != nil {
			endStr = ev.EventEndsAt.Format("02/01/2006 15:04")
		}
		place := ""
		if ev.EventPlace != nil {
			place = *ev.EventPlace
		}
		agency := ""
		if ev.Creator != nil && ev.Creator.UserAgencyID != nil {
			agency = agencyNames[*ev.Creator.UserAgencyID]
		}

		setCell(row, 0, ev.EventID)
		setCell(row, 1, ev.EventName)
		setCell(row, 2, ev.EventStartsAt.Format("02/01/2006 15:04"))
		setCell(row, 3, endStr)
		setCell(row, 4, place)
		setCell(row, 5, muniNames[ev.EventMunicipalityID])
		setCell(row, 6, agency)
		setCell(row, 7, ev.EventStatus.Label())
	}

	// Ancho de columnas acotado a 50
	for col := range headers {
		name, _ := excelize.ColumnNumberToName(col + 1)
		w := float64(widths[col] + 2)
		if w > 50 {
			w = 50
		}
		f.SetColWidth(sheet, name, name, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("[ERROR] Export excel: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo generar el archivo")
	}

	period := filters.Period
	if period == "" {
		period = "dia"
	}
	filename := fmt.Sprintf("eventos_%s_%s.xlsx", period, now.Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}
