// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"inventory-system/pkg/constants"
)

// RegisterCustomValidations регистрирует доменные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("placement_type", isPlacementType); err != nil {
		return err
	}
	if err := v.RegisterValidation("inventaire_status", isInventaireStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("inventory_type", isInventoryType); err != nil {
		return err
	}
	if err := v.RegisterValidation("inventaire_priority", isInventairePriority); err != nil {
		return err
	}

	return nil
}

func isPlacementType(fl validator.FieldLevel) bool {
	return constants.IsValidPlacementType(fl.Field().String())
}

func isInventaireStatus(fl validator.FieldLevel) bool {
	return constants.IsValidInventaireStatus(fl.Field().String())
}

func isInventoryType(fl validator.FieldLevel) bool {
	return constants.IsValidInventoryType(fl.Field().String())
}

func isInventairePriority(fl validator.FieldLevel) bool {
	return constants.IsValidPriority(fl.Field().String())
}
