package domain

import "time"

// Roles as the backend reports them.
const (
	RoleBuyer  = "comprador"
	RoleSeller = "vendedor"
	RoleAdmin  = "admin"
)

// User is the authenticated identity held by the session store.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"nome"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	RegisteredAt time.Time `json:"dataRegistro"`
	Token        string    `json:"token,omitempty"`
}
