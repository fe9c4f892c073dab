package dto

// CreateInventaireDTO: админский путь, associated_to обязателен.
type CreateInventaireDTO struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate     string  `json:"start_date" validate:"required"`
	AssociatedTo  uint64  `json:"associated_to" validate:"required,gt=0"`
	PlacementType string  `json:"placement_type" validate:"required,placement_type"`
	IDPlacement   uint64  `json:"id_placement" validate:"required,gt=0"`
	Priority      string  `json:"priority" validate:"omitempty,inventaire_priority"`
	InventoryType string  `json:"inventory_type" validate:"required,inventory_type"`
}

// CreateMyInventaireDTO: мобильный путь, исполнитель — текущий пользователь.
type CreateMyInventaireDTO struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate     string  `json:"start_date" validate:"required"`
	PlacementType string  `json:"placement_type" validate:"required,placement_type"`
	IDPlacement   uint64  `json:"id_placement" validate:"required,gt=0"`
	Priority      string  `json:"priority" validate:"omitempty,inventaire_priority"`
	InventoryType string  `json:"inventory_type" validate:"required,inventory_type"`
}

type UpdateInventaireDTO struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	StartDate     *string `json:"start_date,omitempty"`
	AssociatedTo  *uint64 `json:"associated_to,omitempty" validate:"omitempty,gt=0"`
	PlacementType *string `json:"placement_type,omitempty" validate:"omitempty,placement_type"`
	IDPlacement   *uint64 `json:"id_placement,omitempty" validate:"omitempty,gt=0"`
	Priority      *string `json:"priority,omitempty" validate:"omitempty,inventaire_priority"`
	InventoryType *string `json:"inventory_type,omitempty" validate:"omitempty,inventory_type"`
	Status        *string `json:"status,omitempty" validate:"omitempty,inventaire_status"`
}

type UpdateInventaireStatusDTO struct {
	Status string `json:"status" validate:"required,inventaire_status"`
}

// InventaireDTO: полная запись в ответах admin-маршрутов.
type InventaireDTO struct {
	IDInventaire   uint64 `json:"id_inventaire"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	StartDate      string `json:"start_date"`
	AssociatedTo   uint64 `json:"associated_to"`
	PlacementType  string `json:"placement_type"`
	IDPlacement    uint64 `json:"id_placement"`
	TotalEquipment int    `json:"total_equipment"`
	Priority       string `json:"priority"`
	InventoryType  string `json:"inventory_type"`
	DeletedAt      string `json:"deleted_at,omitempty"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

// InventaireViewDTO: обогащённое представление для мобильного клиента —
// имя размещения и живой счётчик оборудования вместо сырых id.
type InventaireViewDTO struct {
	IDInventaire   uint64       `json:"id_inventaire"`
	Name           string       `json:"name"`
	InventoryType  string       `json:"inventory_type"`
	StartDate      string       `json:"start_date"`
	Status         string       `json:"status"`
	Priority       string       `json:"priority"`
	PlacementType  string       `json:"placement_type"`
	Emplacement    *string      `json:"emplacement"`
	EquipCount     int          `json:"equip_count"`
	AssociatedUser ShortUserDTO `json:"associated_user"`
}

type InventaireStatsDTO struct {
	Total      uint64 `json:"total"`
	Pending    uint64 `json:"pending"`
	InProgress uint64 `json:"in_progress"`
	Completed  uint64 `json:"completed"`
}
