package analysis

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"symptom-tracker/internal/domain/stats"
	"symptom-tracker/internal/domain/symptoms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []symptoms.Record {
	tod := symptoms.TimeOfDay{Period: symptoms.PeriodAM, Hour: 9, Minute: 30}
	return []symptoms.Record{
		{Date: "2024-02-01", PainLevel: 5, MedicationTaken: true, Details: "after\nlunch", Time: &tod},
		{Date: "2024-01-20", PainLevel: 5, MedicationTaken: false},
		{Date: "2024-01-05", PainLevel: 3, MedicationTaken: true, Details: "mild"},
	}
}

func TestBuildPrompt_Structure(t *testing.T) {
	records := sampleRecords()
	period := stats.Period{Start: "2024-01-01", End: "2024-02-29"}
	age := 34

	prompt := BuildPrompt(PromptInput{
		Patient: Patient{Age: &age, Gender: "female"},
		Disease: DiseaseInfo{Name: "Migraine", Medication: "Sumatriptan"},
		Period:  period,
		Summary: stats.Summarize(records, period),
		Records: records,
	})

	assert.True(t, strings.HasPrefix(prompt, "You are a medical-data analysis assistant."))
	assert.Contains(t, prompt, "- Age: 34\n")
	assert.Contains(t, prompt, "- Gender: female\n")
	assert.Contains(t, prompt, "- Name: Migraine\n")
	assert.Contains(t, prompt, "- Medication: Sumatriptan\n")
	assert.Contains(t, prompt, "- Total days: 60\n")
	assert.Contains(t, prompt, `- Records per month: {"2024-02":1,"2024-01":2}`)
	assert.Contains(t, prompt, `- Pain level distribution: {"3":1,"5":2}`)
	assert.Contains(t, prompt, "1. 2024-02-01 | time: AM 09:30 | pain: 5/10 | medication taken: yes | details: after lunch\n")
	assert.Contains(t, prompt, "2. 2024-01-20 | time: unrecorded | pain: 5/10 | medication taken: no | details: no details provided\n")
	assert.Contains(t, prompt, "3. 2024-01-05")

	for i, title := range SectionTitles {
		assert.Contains(t, prompt, fmt.Sprintf("### %d. %s", i+1, title))
	}
	assert.Contains(t, prompt, "not a medical diagnosis")
}

func TestBuildPrompt_Placeholders(t *testing.T) {
	records := []symptoms.Record{{Date: "2024-01-05", PainLevel: 1}}
	period := stats.Period{Start: "2024-01-01", End: "2024-01-31"}

	prompt := BuildPrompt(PromptInput{
		Period:  period,
		Summary: stats.Summarize(records, period),
		Records: records,
	})

	assert.Contains(t, prompt, "- Age: not provided\n")
	assert.Contains(t, prompt, "- Gender: unknown\n")
	assert.Contains(t, prompt, "- Medication: none\n")
}

// Los números del Summary tienen que aparecer tal cual en el prompt.
func TestBuildPrompt_SummaryValuesRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	period := stats.Period{Start: "2024-01-01", End: "2024-06-30"}

	for iter := 0; iter < 100; iter++ {
		n := 1 + rnd.Intn(30)
		records := make([]symptoms.Record, 0, n)
		for i := 0; i < n; i++ {
			records = append(records, symptoms.Record{
				Date:            fmt.Sprintf("2024-%02d-%02d", 1+rnd.Intn(6), 1+rnd.Intn(28)),
				PainLevel:       1 + rnd.Intn(10),
				MedicationTaken: rnd.Intn(3) == 0,
			})
		}
		s := stats.Summarize(records, period)
		prompt := BuildPrompt(PromptInput{Period: period, Summary: s, Records: records})

		require.Contains(t, prompt, fmt.Sprintf("- Total records: %d\n", s.Count))
		require.Contains(t, prompt, "- Average pain level: "+stats.FormatOneDecimal(s.AvgPainLevel)+"/10\n")
		require.Contains(t, prompt, "- Medication rate: "+stats.FormatOneDecimal(s.MedicationRate)+"%\n")
		require.Contains(t, prompt, "- Monthly average: "+stats.FormatOneDecimal(s.MonthlyAvg)+" records\n")
		require.Contains(t, prompt, fmt.Sprintf("- Days with multiple records: %d\n", s.MultiOccurrenceDays))
		require.Contains(t, prompt, fmt.Sprintf("- Month with most records: %s (%d records)\n", s.MaxMonth, s.MaxMonthCount))
		require.Contains(t, prompt, fmt.Sprintf("- Month with fewest records: %s (%d records)\n", s.MinMonth, s.MinMonthCount))
		require.Contains(t, prompt, fmt.Sprintf("- Total days: %d\n", s.TotalDays))
		for _, m := range s.MonthlyCount {
			require.Contains(t, prompt, fmt.Sprintf("%q:%d", m.Month, m.Count))
		}
		for _, l := range s.PainDistribution {
			require.Contains(t, prompt, fmt.Sprintf("\"%d\":%d", l.Level, l.Count))
		}
	}
}
