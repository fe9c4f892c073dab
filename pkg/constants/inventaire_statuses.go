package constants

// --- СТАТУСЫ ИНВЕНТАРИЗАЦИЙ (Совпадает со значениями в БД) ---
const (
	InventaireStatusPending   = "Pending"
	InventaireStatusStarted   = "Started"
	InventaireStatusDone      = "Done"
	InventaireStatusCancelled = "Cancelled"
)

// Порядок имеет значение: переход разрешён только вперёд по этому списку.
var InventaireStatusOrder = []string{
	InventaireStatusPending,
	InventaireStatusStarted,
	InventaireStatusDone,
	InventaireStatusCancelled,
}

func InventaireStatusIndex(status string) int {
	for i, s := range InventaireStatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

func IsValidInventaireStatus(status string) bool {
	return InventaireStatusIndex(status) >= 0
}

// CanTransitionStatus проверяет переход current -> next.
// Правило: индекс не убывает, либо next == Cancelled.
// Pending -> Done разрешён: правило сверяет только индексы, промежуточный
// Started не требуется.
func CanTransitionStatus(current, next string) bool {
	currentIndex := InventaireStatusIndex(current)
	newIndex := InventaireStatusIndex(next)
	if currentIndex < 0 || newIndex < 0 {
		return false
	}
	if next == InventaireStatusCancelled {
		return true
	}
	return newIndex >= currentIndex
}
