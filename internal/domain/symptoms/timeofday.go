package symptoms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

var ErrInvalidTime = errors.New("time must be AM|PM HH:MM with hour 1-12 and minute 0-59")

// TimeOfDay es la hora opcional de un registro en formato de 12 horas.
type TimeOfDay struct {
	Period Period
	Hour   int
	Minute int
}

func (t TimeOfDay) Validate() error {
	if t.Period != PeriodAM && t.Period != PeriodPM {
		return ErrInvalidTime
	}
	if t.Hour < 1 || t.Hour > 12 {
		return ErrInvalidTime
	}
	if t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidTime
	}
	return nil
}

// String usa el formato persistido: "AM 09:30".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%s %02d:%02d", t.Period, t.Hour, t.Minute)
}

// ParseTimeOfDay acepta "AM 09:30" (también "am 9:30").
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return TimeOfDay{}, ErrInvalidTime
	}

	hh, mm, ok := strings.Cut(fields[1], ":")
	if !ok {
		return TimeOfDay{}, ErrInvalidTime
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTime
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 {
		return TimeOfDay{}, ErrInvalidTime
	}

	t := TimeOfDay{
		Period: Period(strings.ToUpper(fields[0])),
		Hour:   hour,
		Minute: minute,
	}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// parseOptionalTime: "" => nil.
func parseOptionalTime(s string) (*TimeOfDay, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
