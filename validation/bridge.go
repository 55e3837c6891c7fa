package validation

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// sharedTagValidator is the process-wide validator/v10 instance used when a
// caller does not supply their own. Im aware that a global is not the best
// practice, but for what we need, it is sufficient.
var (
	sharedTagValidator *validator.Validate
	tagValidatorOnce   sync.Once
)

func defaultTagValidator() *validator.Validate {
	tagValidatorOnce.Do(func() {
		zap.L().Debug("Initializing default tag validator")
		sharedTagValidator = validator.New()
	})
	return sharedTagValidator
}

// TagValidator adapts a go-playground/validator tag expression (e.g.
// "required,email" or "min=3,max=32") into a ValidatorFunc, so the
// validator/v10 rule vocabulary can be used as a custom check in the chain.
// When v is nil a shared default instance is used. The failing tag becomes
// the overriding failure message.
func TagValidator(v *validator.Validate, tag string) ValidatorFunc {
	return func(ctx context.Context, value interface{}) error {
		instance := v
		if instance == nil {
			instance = defaultTagValidator()
		}

		err := instance.VarCtx(ctx, value, tag)
		if err == nil {
			return nil
		}

		if fieldErrors, ok := err.(validator.ValidationErrors); ok && len(fieldErrors) > 0 {
			return fmt.Errorf("failed on validation tag '%s'", fieldErrors[0].Tag())
		}
		return err
	}
}
