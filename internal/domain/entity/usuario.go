package entity

import "time"

// Roles de la aplicación.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario cuenta de acceso al sistema.
type Usuario struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Nombre       string
	Rol          string // admin, vendedor
	Estado       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
