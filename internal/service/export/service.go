package export_service

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"jandita-bot/internal/calendar"
	"jandita-bot/internal/models"
	"jandita-bot/internal/service"
	"jandita-bot/internal/view"
)

const sheetName = "Planificación"

type exportService struct{}

func NewExportService() service.ExportService {
	return &exportService{}
}

// Export columnas: semana, inicio, fin, familia, turno. Los campos vacíos salen con el marcador de la vista
func (s *exportService) Export(records []models.WeekRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("renombrar hoja: %w", err)
	}

	headers := []string{"Semana", "Inicio", "Fin", "Familia", "Turno"}
	if err := writeRow(f, 1, headers); err != nil {
		return nil, fmt.Errorf("cabecera: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de cabecera: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", headerStyle); err != nil {
		return nil, fmt.Errorf("aplicar estilo: %w", err)
	}

	for i, r := range view.Sorted(records) {
		row := i + 2
		values := []string{
			view.WeekLabel(r),
			calendar.WeekKey(r.WeekStart),
			calendar.WeekKey(r.WeekEnd()),
			view.ValueOrPlaceholder(r.Familia),
			view.ValueOrPlaceholder(r.Turno),
		}
		if err := writeRow(f, row, values); err != nil {
			return nil, fmt.Errorf("semana %s: %w", r.Key(), err)
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 20},
		{"B", "C", 12},
		{"D", "E", 24},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheetName, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("ancho de columnas %s:%s: %w", w.from, w.to, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return err
		}
	}
	return nil
}
