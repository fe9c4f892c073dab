package constants

// --- ТИПЫ РАЗМЕЩЕНИЙ (Совпадает со значениями в БД) ---
const (
	PlacementTypeDesk    = "desk"
	PlacementTypeSection = "section"
)

func IsValidPlacementType(placementType string) bool {
	return placementType == PlacementTypeDesk || placementType == PlacementTypeSection
}

// --- ПРИОРИТЕТЫ ---
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var DefaultPriority = PriorityMedium

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// --- ТИПЫ ИНВЕНТАРИЗАЦИИ ---
const (
	InventoryTypeBarcode = "barcode"
	InventoryTypeRFID    = "rfid"
)

func IsValidInventoryType(inventoryType string) bool {
	return inventoryType == InventoryTypeBarcode || inventoryType == InventoryTypeRFID
}
