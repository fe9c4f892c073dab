package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Inventaire — кампания инвентаризации оборудования на одном размещении
// (desk или section). (PlacementType, IDPlacement) — полиморфная ссылка без
// ограничения на уровне БД, существование проверяется приложением.
type Inventaire struct {
	ID             uint64    `json:"id_inventaire"`
	Name           string    `json:"name"`
	Status         string    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	AssociatedTo   uint64    `json:"associated_to"`
	PlacementType  string    `json:"placement_type"`
	IDPlacement    uint64    `json:"id_placement"`
	TotalEquipment int       `json:"total_equipment"`
	Priority       string    `json:"priority"`
	InventoryType  string    `json:"inventory_type"`
	IsDeleted      bool      `json:"is_deleted"`
	DeletedAt      null.Time `json:"deleted_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
