package stats

import (
	"sort"
	"strconv"

	"symptom-tracker/internal/domain/symptoms"

	"github.com/shopspring/decimal"
)

const NoRecordsMessage = "No symptom records in the selected period."

type MonthCount struct {
	Month string // YYYY-MM
	Count int
}

type LevelCount struct {
	Level int
	Count int
}

// Summary es el resultado del agregador. Los promedios vienen ya redondeados
// a un decimal (half-up) y FormatOneDecimal los reproduce sin pérdida.
type Summary struct {
	Count               int
	AvgPainLevel        float64
	MedicationRate      float64
	MultiOccurrenceDays int

	// MonthlyCount mantiene el orden en que aparece cada mes en los registros.
	MonthlyCount []MonthCount
	MonthlyAvg   float64

	MaxMonth      string
	MaxMonthCount int
	MinMonth      string
	MinMonthCount int

	// PainDistribution ordenado por nivel ascendente.
	PainDistribution []LevelCount

	TotalDays int

	// Message solo se llena cuando no hay registros.
	Message string
}

func (s Summary) Empty() bool {
	return s.Count == 0
}

// Summarize es una función pura sobre registros ya validados.
// Con una lista vacía todo queda en cero y Message explica por qué.
func Summarize(records []symptoms.Record, period Period) Summary {
	if len(records) == 0 {
		return Summary{
			MonthlyCount:     []MonthCount{},
			PainDistribution: []LevelCount{},
			Message:          NoRecordsMessage,
		}
	}

	count := len(records)
	painSum := 0
	taken := 0
	perDate := map[string]int{}
	monthIdx := map[string]int{}
	months := make([]MonthCount, 0)
	perLevel := map[int]int{}

	for _, r := range records {
		painSum += r.PainLevel
		if r.MedicationTaken {
			taken++
		}
		perDate[r.Date]++
		perLevel[r.PainLevel]++

		month := monthKey(r.Date)
		if i, ok := monthIdx[month]; ok {
			months[i].Count++
		} else {
			monthIdx[month] = len(months)
			months = append(months, MonthCount{Month: month, Count: 1})
		}
	}

	multi := 0
	for _, n := range perDate {
		if n >= 2 {
			multi++
		}
	}

	// Empate: gana el primero visto con conteo estrictamente mayor/menor.
	var maxMonth, minMonth string
	maxCount := 0
	minCount := 0
	minSet := false
	for _, m := range months {
		if m.Count > maxCount {
			maxMonth, maxCount = m.Month, m.Count
		}
		if !minSet || m.Count < minCount {
			minMonth, minCount = m.Month, m.Count
			minSet = true
		}
	}

	levels := make([]LevelCount, 0, len(perLevel))
	for lvl, n := range perLevel {
		levels = append(levels, LevelCount{Level: lvl, Count: n})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Level < levels[j].Level })

	monthlyAvg := 0.0
	if len(months) > 0 {
		monthlyAvg = ratio(int64(count), int64(len(months)), 1)
	}

	return Summary{
		Count:               count,
		AvgPainLevel:        ratio(int64(painSum), int64(count), 1),
		MedicationRate:      ratio(int64(taken)*100, int64(count), 1),
		MultiOccurrenceDays: multi,
		MonthlyCount:        months,
		MonthlyAvg:          monthlyAvg,
		MaxMonth:            maxMonth,
		MaxMonthCount:       maxCount,
		MinMonth:            minMonth,
		MinMonthCount:       minCount,
		PainDistribution:    levels,
		TotalDays:           period.TotalDays(),
	}
}

func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// ratio divide y redondea half-up a `places` decimales con aritmética decimal
// exacta (2.25 -> 2.3, cosa que float64 + toFixed no garantiza).
func ratio(num, den int64, places int32) float64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(num).
		Div(decimal.NewFromInt(den)).
		Round(places).
		InexactFloat64()
}

// FormatOneDecimal formatea un valor ya redondeado ("5.0", "66.7").
func FormatOneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
