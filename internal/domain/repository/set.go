package repository

// Set agrupa los repositorios atados a una misma unidad de trabajo.
type Set struct {
	Documents   DocumentRepository
	Lines       DocumentLineRepository
	Assignments AssignmentRepository
	Balances    BalanceRepository
	Movements   StockMovementRepository
	Locations   LocationRepository
	Products    ProductRepository
	Warehouses  WarehouseRepository
	Employees   EmployeeRepository
	Sequences   SequenceRepository
	Snapshots   SnapshotRepository
}
