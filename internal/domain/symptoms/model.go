package symptoms

import "time"

const (
	// DateLayout es el formato ISO de día; se guarda como string para poder
	// comparar rangos lexicográficamente.
	DateLayout = "2006-01-02"

	MinPainLevel     = 1
	MaxPainLevel     = 10
	MaxDetailsLength = 1000
)

// Record es una entrada del diario de síntomas.
type Record struct {
	ID          string
	OwnerUserID string
	DiseaseID   string

	Date string     // YYYY-MM-DD
	Time *TimeOfDay // opcional

	PainLevel       int
	MedicationTaken bool
	Details         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeString devuelve "AM 09:30" o "" si no hay hora registrada.
func (r Record) TimeString() string {
	if r.Time == nil {
		return ""
	}
	return r.Time.String()
}

// RangeQuery filtra por rango inclusivo de días y, opcionalmente, por enfermedad.
type RangeQuery struct {
	Start     string
	End       string
	DiseaseID string
}

// DiseaseCount es un marcador del calendario: cuántos registros de una
// enfermedad hay en un día.
type DiseaseCount struct {
	DiseaseID string
	Count     int
}

type DayMarkers struct {
	Date     string
	Diseases []DiseaseCount
}

// MonthView es lo que necesita la pantalla de calendario para un mes.
type MonthView struct {
	Year    int
	Month   time.Month
	Start   string
	End     string
	Records []Record
	Days    []DayMarkers
}
