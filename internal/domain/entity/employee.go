package entity

import "time"

// Roles válidos para Employee.
const (
	RoleDirector    = "director"
	RoleStorekeeper = "storekeeper"
)

// Employee empleado que firma documentos como autor.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Login     string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

// FullName nombre para mostrar.
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
