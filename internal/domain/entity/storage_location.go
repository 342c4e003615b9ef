package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// StorageLocation posición física de almacenamiento dentro de una bodega.
type StorageLocation struct {
	ID            int64
	WarehouseID   int64
	Building      string
	Room          string
	Rack          string
	Spot          string
	CurrentWeight decimal.Decimal
	UpdatedAt     time.Time
}

// RackKey identifica el rack que comparten varias ubicaciones.
type RackKey struct {
	WarehouseID int64
	Building    string
	Room        string
	Rack        string
}

func (k RackKey) String() string {
	return fmt.Sprintf("%d/%s-%s-%s", k.WarehouseID, k.Building, k.Room, k.Rack)
}

// Less orden total de racks; se usa para bloquear siempre en el mismo orden.
func (k RackKey) Less(o RackKey) bool {
	if k.WarehouseID != o.WarehouseID {
		return k.WarehouseID < o.WarehouseID
	}
	if k.Building != o.Building {
		return k.Building < o.Building
	}
	if k.Room != o.Room {
		return k.Room < o.Room
	}
	return k.Rack < o.Rack
}

// RackKey devuelve el rack de la ubicación.
func (l *StorageLocation) RackKey() RackKey {
	return RackKey{WarehouseID: l.WarehouseID, Building: l.Building, Room: l.Room, Rack: l.Rack}
}

// Code coordenada legible Edificio-Sala-Rack-Posición.
func (l *StorageLocation) Code() string {
	return fmt.Sprintf("%s-%s-%s-%s", l.Building, l.Room, l.Rack, l.Spot)
}
