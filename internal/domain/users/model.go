package users

import "time"

// Gender define el género del perfil.
// @Enum male, female, unspecified
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnspecified:
		return true
	default:
		return false
	}
}

// User es el documento de usuario; el ID lo emite el proveedor de identidad.
// Nunca se borra desde la app.
type User struct {
	ID    string
	Email string

	Birthdate *time.Time
	Gender    Gender

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Age en años cumplidos a la fecha now.
func Age(birthdate, now time.Time) int {
	age := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() || (now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// AgeAt devuelve nil si no hay fecha de nacimiento.
func (u User) AgeAt(now time.Time) *int {
	if u.Birthdate == nil {
		return nil
	}
	a := Age(*u.Birthdate, now)
	return &a
}
