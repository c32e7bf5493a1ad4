package stats

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"symptom-tracker/internal/domain/symptoms"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Period es un rango inclusivo de días ISO.
type Period struct {
	Start string
	End   string
}

func NewPeriod(start, end string) (Period, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	s, err := time.Parse(symptoms.DateLayout, start)
	if err != nil {
		return Period{}, fmt.Errorf("%w: start must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	e, err := time.Parse(symptoms.DateLayout, end)
	if err != nil {
		return Period{}, fmt.Errorf("%w: end must be YYYY-MM-DD", ErrInvalidPeriod)
	}
	if e.Before(s) {
		return Period{}, fmt.Errorf("%w: start must not be after end", ErrInvalidPeriod)
	}
	return Period{Start: start, End: end}, nil
}

// TotalDays = floor(end - start en días) + 1.
// Se calcula en UTC, así que no hay saltos por horario de verano.
func (p Period) TotalDays() int {
	s, err1 := time.Parse(symptoms.DateLayout, p.Start)
	e, err2 := time.Parse(symptoms.DateLayout, p.End)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(math.Floor(e.Sub(s).Hours()/24)) + 1
}
