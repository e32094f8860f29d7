package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nahuelmangano/speedtest/internal/domain"
)

var validate = validator.New()

// Validate aplica las etiquetas `validate` del DTO. Los fallos envuelven domain.ErrValidation
// con el primer campo inválido.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: campo %s no cumple %s", domain.ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
