package models

import "github.com/google/uuid"

// Роли сотрудников.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User учётная запись сотрудника клуба.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
}
