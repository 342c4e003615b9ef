package dto

import "github.com/shopspring/decimal"

// CatalogSeed datos maestros a cargar (archivo YAML/JSON leído con viper).
type CatalogSeed struct {
	Warehouses   []WarehouseSeed   `mapstructure:"warehouses" json:"warehouses"`
	Locations    []LocationSeed    `mapstructure:"locations" json:"locations"`
	Products     []ProductSeed     `mapstructure:"products" json:"products"`
	Employees    []EmployeeSeed    `mapstructure:"employees" json:"employees"`
	RackCeilings []RackCeilingSeed `mapstructure:"rack_ceilings" json:"rack_ceilings"`
}

// WarehouseSeed bodega. ID cero = asignado por el almacenamiento.
type WarehouseSeed struct {
	ID      int64  `mapstructure:"id" json:"id"`
	Name    string `mapstructure:"name" json:"name"`
	Address string `mapstructure:"address" json:"address"`
}

// LocationSeed ubicación Edificio-Sala-Rack-Posición.
type LocationSeed struct {
	ID          int64  `mapstructure:"id" json:"id"`
	WarehouseID int64  `mapstructure:"warehouse_id" json:"warehouse_id"`
	Building    string `mapstructure:"building" json:"building"`
	Room        string `mapstructure:"room" json:"room"`
	Rack        string `mapstructure:"rack" json:"rack"`
	Spot        string `mapstructure:"spot" json:"spot"`
}

// ProductSeed artículo; Weight es por unidad.
type ProductSeed struct {
	ID            int64  `mapstructure:"id" json:"id"`
	ArticleNumber string `mapstructure:"article_number" json:"article_number"`
	Name          string `mapstructure:"name" json:"name"`
	Price         string `mapstructure:"price" json:"price"`
	Weight        string `mapstructure:"weight" json:"weight"`
	Dimension     string `mapstructure:"dimension" json:"dimension"`
}

// EmployeeSeed empleado con rol director o storekeeper.
type EmployeeSeed struct {
	ID        int64  `mapstructure:"id" json:"id"`
	FirstName string `mapstructure:"first_name" json:"first_name"`
	LastName  string `mapstructure:"last_name" json:"last_name"`
	Login     string `mapstructure:"login" json:"login"`
	Role      string `mapstructure:"role" json:"role"`
	Inactive  bool   `mapstructure:"inactive" json:"inactive"`
}

// RackCeilingSeed límite propio de un rack.
type RackCeilingSeed struct {
	WarehouseID int64  `mapstructure:"warehouse_id" json:"warehouse_id"`
	Building    string `mapstructure:"building" json:"building"`
	Room        string `mapstructure:"room" json:"room"`
	Rack        string `mapstructure:"rack" json:"rack"`
	Ceiling     string `mapstructure:"ceiling" json:"ceiling"`
}

// CatalogSeedResult cantidades cargadas.
type CatalogSeedResult struct {
	Warehouses   int `json:"warehouses"`
	Locations    int `json:"locations"`
	Products     int `json:"products"`
	Employees    int `json:"employees"`
	RackCeilings int `json:"rack_ceilings"`
}

// EmployeeResponse empleado autenticado.
type EmployeeResponse struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Login    string `json:"login"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// ParseDecimalOrZero convierte s; vacío equivale a cero.
func ParseDecimalOrZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
