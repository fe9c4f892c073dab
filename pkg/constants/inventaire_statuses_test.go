package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidInventaireStatus(t *testing.T) {
	assert.True(t, IsValidInventaireStatus(InventaireStatusPending))
	assert.True(t, IsValidInventaireStatus(InventaireStatusStarted))
	assert.True(t, IsValidInventaireStatus(InventaireStatusDone))
	assert.True(t, IsValidInventaireStatus(InventaireStatusCancelled))

	assert.False(t, IsValidInventaireStatus("pending"))
	assert.False(t, IsValidInventaireStatus("Finished"))
	assert.False(t, IsValidInventaireStatus(""))
}

func TestCanTransitionStatus(t *testing.T) {
	testCases := []struct {
		name    string
		current string
		next    string
		allowed bool
	}{
		{"Pending -> Started", InventaireStatusPending, InventaireStatusStarted, true},
		{"Started -> Done", InventaireStatusStarted, InventaireStatusDone, true},
		// переход вперёд через шаг разрешён
		{"Pending -> Done", InventaireStatusPending, InventaireStatusDone, true},
		{"Done -> Started", InventaireStatusDone, InventaireStatusStarted, false},
		{"Started -> Pending", InventaireStatusStarted, InventaireStatusPending, false},
		{"Done -> Pending", InventaireStatusDone, InventaireStatusPending, false},
		// отмена возможна из любого состояния
		{"Pending -> Cancelled", InventaireStatusPending, InventaireStatusCancelled, true},
		{"Started -> Cancelled", InventaireStatusStarted, InventaireStatusCancelled, true},
		{"Done -> Cancelled", InventaireStatusDone, InventaireStatusCancelled, true},
		{"Cancelled -> Cancelled", InventaireStatusCancelled, InventaireStatusCancelled, true},
		// но выход из Cancelled — это движение назад
		{"Cancelled -> Pending", InventaireStatusCancelled, InventaireStatusPending, false},
		{"Cancelled -> Started", InventaireStatusCancelled, InventaireStatusStarted, false},
		{"Cancelled -> Done", InventaireStatusCancelled, InventaireStatusDone, false},
		// одинаковый статус — не переход назад
		{"Pending -> Pending", InventaireStatusPending, InventaireStatusPending, true},
		{"Done -> Done", InventaireStatusDone, InventaireStatusDone, true},
		// неизвестные статусы отклоняются
		{"unknown current", "Archived", InventaireStatusDone, false},
		{"unknown next", InventaireStatusPending, "Archived", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransitionStatus(tc.current, tc.next))
		})
	}
}
