package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"symptom-tracker/internal/domain/stats"
	"symptom-tracker/internal/domain/symptoms"
)

const (
	placeholderMissing   = "not provided"
	placeholderGender    = "unknown"
	placeholderTime      = "unrecorded"
	placeholderDetails   = "no details provided"
	placeholderNoMonth   = "none"
	sectionDelimiter     = "###"
	defaultDiseaseName   = "unspecified disease"
	defaultMedicationTxt = "none"
)

// Patient son los datos demográficos que entran al prompt.
type Patient struct {
	Age    *int
	Gender string
}

type DiseaseInfo struct {
	Name       string
	Medication string
}

// PromptInput lleva el Summary ya calculado: los números del prompt salen de
// ahí y no se recalculan.
type PromptInput struct {
	Patient Patient
	Disease DiseaseInfo
	Period  stats.Period
	Summary stats.Summary
	Records []symptoms.Record
}

// BuildPrompt arma el prompt con plantilla fija de cinco secciones.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder
	s := in.Summary

	b.WriteString("You are a medical-data analysis assistant. Analyze the symptom records below and give the patient an objective, easy-to-understand assessment.\n\n")

	b.WriteString("## Patient\n")
	fmt.Fprintf(&b, "- Age: %s\n", ageText(in.Patient.Age))
	fmt.Fprintf(&b, "- Gender: %s\n\n", orDefault(in.Patient.Gender, placeholderGender))

	b.WriteString("## Disease\n")
	fmt.Fprintf(&b, "- Name: %s\n", orDefault(in.Disease.Name, defaultDiseaseName))
	fmt.Fprintf(&b, "- Medication: %s\n\n", orDefault(in.Disease.Medication, defaultMedicationTxt))

	b.WriteString("## Period\n")
	fmt.Fprintf(&b, "- Start: %s\n", in.Period.Start)
	fmt.Fprintf(&b, "- End: %s\n", in.Period.End)
	fmt.Fprintf(&b, "- Total days: %d\n\n", s.TotalDays)

	b.WriteString("## Statistics\n")
	fmt.Fprintf(&b, "- Total records: %d\n", s.Count)
	fmt.Fprintf(&b, "- Average pain level: %s/10\n", stats.FormatOneDecimal(s.AvgPainLevel))
	fmt.Fprintf(&b, "- Medication rate: %s%%\n", stats.FormatOneDecimal(s.MedicationRate))
	fmt.Fprintf(&b, "- Monthly average: %s records\n", stats.FormatOneDecimal(s.MonthlyAvg))
	fmt.Fprintf(&b, "- Days with multiple records: %d\n", s.MultiOccurrenceDays)
	fmt.Fprintf(&b, "- Month with most records: %s (%d records)\n", orDefault(s.MaxMonth, placeholderNoMonth), s.MaxMonthCount)
	fmt.Fprintf(&b, "- Month with fewest records: %s (%d records)\n", orDefault(s.MinMonth, placeholderNoMonth), s.MinMonthCount)
	fmt.Fprintf(&b, "- Records per month: %s\n", monthlyLiteral(s.MonthlyCount))
	fmt.Fprintf(&b, "- Pain level distribution: %s\n\n", painLiteral(s.PainDistribution))

	b.WriteString("## Records\n")
	for i, r := range in.Records {
		fmt.Fprintf(&b, "%d. %s | time: %s | pain: %d/10 | medication taken: %s | details: %s\n",
			i+1,
			r.Date,
			orDefault(r.TimeString(), placeholderTime),
			r.PainLevel,
			yesNo(r.MedicationTaken),
			orDefault(oneLine(r.Details), placeholderDetails),
		)
	}
	b.WriteString("\n")

	b.WriteString("Respond in Markdown using exactly these five sections, each starting with the heading shown:\n\n")
	for i, title := range SectionTitles {
		fmt.Fprintf(&b, "%s %d. %s\n%s\n\n", sectionDelimiter, i+1, title, sectionHints[i])
	}

	b.WriteString("Note: this analysis is for reference only and is not a medical diagnosis. Always consult a healthcare professional for medical decisions.")

	return b.String()
}

// SectionTitles son los títulos de la plantilla de respuesta, en orden.
var SectionTitles = [5]string{
	"Severity assessment",
	"Pattern analysis",
	"Cautions and lifestyle tips",
	"Information for your physician",
	"Additional recommendations",
}

var sectionHints = [5]string{
	"Assess the overall severity from the pain levels and their trend.",
	"Describe patterns by weekday, time of day and month, and how medication relates to pain.",
	"List practical cautions and lifestyle habits that may help.",
	"Summarize the key facts the patient should tell their physician.",
	"Add any other recommendations, including when to seek care promptly.",
}

func ageText(age *int) string {
	if age == nil {
		return placeholderMissing
	}
	return strconv.Itoa(*age)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// monthlyLiteral: {"2024-01":2,"2024-02":1} en orden de aparición.
func monthlyLiteral(months []stats.MonthCount) string {
	parts := make([]string, 0, len(months))
	for _, m := range months {
		parts = append(parts, fmt.Sprintf("%q:%d", m.Month, m.Count))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// painLiteral: {"3":1,"5":2} con niveles ascendentes.
func painLiteral(levels []stats.LevelCount) string {
	parts := make([]string, 0, len(levels))
	for _, l := range levels {
		parts = append(parts, fmt.Sprintf("\"%d\":%d", l.Level, l.Count))
	}
	return "{" + strings.Join(parts, ",") + "}"
}
