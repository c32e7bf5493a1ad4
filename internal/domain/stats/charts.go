package stats

import (
	"sort"
	"time"

	"symptom-tracker/internal/domain/symptoms"
)

// WeekdayLabels en orden Sunday..Saturday (coincide con time.Weekday).
var WeekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type WeekdayBucket struct {
	Label string
	Count int
}

type PainPoint struct {
	Date      string
	Time      string
	PainLevel int
}

type MedicationBreakdown struct {
	Taken    int
	NotTaken int
}

// Charts agrupa las series de los tres gráficos de la pantalla de análisis.
type Charts struct {
	Weekday    []WeekdayBucket
	Pain       []PainPoint
	Medication MedicationBreakdown
}

func BuildCharts(records []symptoms.Record) Charts {
	return Charts{
		Weekday:    WeekdayHistogram(records),
		Pain:       PainSeries(records),
		Medication: Medication(records),
	}
}

// WeekdayHistogram cuenta registros por día de la semana.
// Fechas que no parsean se ignoran.
func WeekdayHistogram(records []symptoms.Record) []WeekdayBucket {
	var counts [7]int
	for _, r := range records {
		t, err := time.Parse(symptoms.DateLayout, r.Date)
		if err != nil {
			continue
		}
		counts[t.Weekday()]++
	}

	out := make([]WeekdayBucket, 7)
	for i := range out {
		out[i] = WeekdayBucket{Label: WeekdayLabels[i], Count: counts[i]}
	}
	return out
}

// PainSeries ordena por fecha ascendente sin tocar el slice de entrada.
func PainSeries(records []symptoms.Record) []PainPoint {
	sorted := make([]symptoms.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	out := make([]PainPoint, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, PainPoint{Date: r.Date, Time: r.TimeString(), PainLevel: r.PainLevel})
	}
	return out
}

func Medication(records []symptoms.Record) MedicationBreakdown {
	var m MedicationBreakdown
	for _, r := range records {
		if r.MedicationTaken {
			m.Taken++
		} else {
			m.NotTaken++
		}
	}
	return m
}
