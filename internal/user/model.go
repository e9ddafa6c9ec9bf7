package user

import "time"

// Roles gate the routes each operator can reach.
const (
	RoleAdmin   = "ADMIN"
	RoleSales   = "SALES"
	RoleFinance = "FINANCE"
	RoleFiscal  = "FISCAL"
)

func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleSales, RoleFinance, RoleFiscal:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest payload de autenticación.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"    binding:"required" example:"admin@loja.com"`
	Password string `json:"password" binding:"required" example:"secret"`
}

// CreateUserRequest payload de creación de operador.
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	Email    string `json:"email"     binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"      binding:"required" example:"SALES"`
	Password string `json:"password"  binding:"required"`
}
