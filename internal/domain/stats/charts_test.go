package stats

import (
	"testing"

	"symptom-tracker/internal/domain/symptoms"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayHistogram(t *testing.T) {
	records := []symptoms.Record{
		rec("2024-01-07", 3, false), // domingo
		rec("2024-01-08", 3, false), // lunes
		rec("2024-01-13", 3, false), // sábado
		rec("2024-01-14", 3, false), // domingo
		rec("not-a-date", 3, false),
	}

	hist := WeekdayHistogram(records)

	assert.Len(t, hist, 7)
	assert.Equal(t, WeekdayBucket{Label: "Sun", Count: 2}, hist[0])
	assert.Equal(t, WeekdayBucket{Label: "Mon", Count: 1}, hist[1])
	assert.Equal(t, WeekdayBucket{Label: "Sat", Count: 1}, hist[6])
	assert.Equal(t, 0, hist[3].Count)
}

func TestPainSeries_AscendingAndNonMutating(t *testing.T) {
	records := []symptoms.Record{
		rec("2024-01-20", 7, false),
		rec("2024-01-05", 3, false),
		rec("2024-01-10", 5, false),
	}

	series := PainSeries(records)

	assert.Equal(t, []PainPoint{
		{Date: "2024-01-05", PainLevel: 3},
		{Date: "2024-01-10", PainLevel: 5},
		{Date: "2024-01-20", PainLevel: 7},
	}, series)
	assert.Equal(t, "2024-01-20", records[0].Date)
}

func TestMedication(t *testing.T) {
	charts := BuildCharts([]symptoms.Record{
		rec("2024-01-01", 1, true),
		rec("2024-01-02", 1, true),
		rec("2024-01-03", 1, false),
	})

	assert.Equal(t, MedicationBreakdown{Taken: 2, NotTaken: 1}, charts.Medication)
	assert.Len(t, charts.Weekday, 7)
	assert.Len(t, charts.Pain, 3)
}
