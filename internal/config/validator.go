package config

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/roboco-io/chatcomp/internal/delivery"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	providerNames = map[string]struct{}{
		delivery.NameConsole: {},
		delivery.NameJSON:    {},
		delivery.NameLegacy:  {},
	}
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("provider_name", func(fl validator.FieldLevel) bool {
			_, ok := providerNames[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// IsProviderName reports whether name is a built-in delivery provider.
func IsProviderName(name string) bool {
	_, ok := providerNames[name]
	return ok
}
