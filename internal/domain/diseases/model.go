package diseases

import "time"

// Disease es una enfermedad crónica que el usuario sigue en su diario.
type Disease struct {
	ID          string
	OwnerUserID string

	Name       string
	Medication string // opcional

	CreatedAt time.Time
	UpdatedAt time.Time
}
