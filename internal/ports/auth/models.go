package auth

import "time"

// Claims representa la información extraída del token.
// ExpiresAt es cero si el proveedor no informa expiración.
type Claims struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Identity es lo que devuelve el proveedor tras sign-up / sign-in.
type Identity struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Claims de la identidad recién emitida.
func (id Identity) Claims() Claims {
	return Claims{UserID: id.UserID, Email: id.Email, ExpiresAt: id.ExpiresAt}
}

// Credential es la cuenta email+hash del proveedor embebido.
type Credential struct {
	UserID       string
	Email        string // normalizado
	PasswordHash []byte
	CreatedAt    time.Time
}
