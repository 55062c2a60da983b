package entity

import "time"

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User usuario del taller; pertenece a una empresa y tiene un único rol.
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, asesor, compras, consulta
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
