package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// Equipment принадлежит ровно одному размещению: либо desk_id, либо section_id.
// Инвариант держит CHECK в схеме и подсистема оборудования; ядро инвентаризаций
// читает эти строки только для подсчёта.
type Equipment struct {
	ID                uint64      `json:"id"`
	Name              string      `json:"name"`
	SpecialID         string      `json:"special_id"`
	PurchasePrice     float64     `json:"purchase_price"`
	PurchaseDate      time.Time   `json:"purchase_date"`
	DepreciationValue float64     `json:"depreciation_value"`
	Condition         string      `json:"condition"`
	EmployeeID        null.Int    `json:"employee_id"`
	DeskID            null.Int    `json:"desk_id"`
	SectionID         null.Int    `json:"section_id"`
	IsDeleted         bool        `json:"is_deleted"`
	DeletedAt         null.Time   `json:"deleted_at"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
