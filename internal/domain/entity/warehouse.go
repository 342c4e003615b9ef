package entity

import "time"

// Warehouse bodega que agrupa ubicaciones de almacenamiento.
type Warehouse struct {
	ID        int64
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
