package entity

import "time"

// Roles de usuario del marketplace.
const (
	RoleAdmin  = "admin"  // equipo QA / administración
	RoleSeller = "seller" // vendedor
	RoleBuyer  = "buyer"  // comprador
)

// User usuario de la plataforma (vendedor, comprador o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	StoreName    string // nombre de tienda, solo vendedores
	Role         string
	Status       string // active | suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
