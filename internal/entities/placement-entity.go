package entities

// PlacementRef — то, что ядру нужно знать о размещении: id и имя.
// Конкретная таблица определяется дискриминатором placement_type.
type PlacementRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type Desk struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	DepartmentID uint64 `json:"department_id"`
}

type Section struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	WarehouseID uint64 `json:"warehouse_id"`
}
