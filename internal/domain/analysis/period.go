package analysis

import (
	"fmt"
	"strings"
	"time"

	"symptom-tracker/internal/domain/stats"
	"symptom-tracker/internal/domain/symptoms"
)

type PeriodKind string

const (
	PeriodOneMonth    PeriodKind = "1month"
	PeriodThreeMonths PeriodKind = "3months"
	PeriodCustom      PeriodKind = "custom"
)

// ResolvePeriod convierte el filtro de la pantalla en un rango de días.
// Los presets restan meses de calendario a hoy y ajustan al último día del
// mes destino (31-mar menos 1 mes = 29-feb).
func ResolvePeriod(kind PeriodKind, start, end string, today time.Time) (stats.Period, error) {
	switch PeriodKind(strings.TrimSpace(string(kind))) {
	case PeriodOneMonth, "":
		return presetPeriod(1, today), nil
	case PeriodThreeMonths:
		return presetPeriod(3, today), nil
	case PeriodCustom:
		if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
			return stats.Period{}, fmt.Errorf("%w: select both start and end dates", ErrInvalidInput)
		}
		p, err := stats.NewPeriod(start, end)
		if err != nil {
			return stats.Period{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return p, nil
	default:
		return stats.Period{}, fmt.Errorf("%w: period must be 1month, 3months or custom", ErrInvalidInput)
	}
}

func presetPeriod(months int, today time.Time) stats.Period {
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return stats.Period{
		Start: SubMonths(end, months).Format(symptoms.DateLayout),
		End:   end.Format(symptoms.DateLayout),
	}
}

// SubMonths resta meses de calendario sin desbordar al mes siguiente.
func SubMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m-time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := target.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
