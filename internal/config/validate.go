package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/ticktype/internal/model"
)

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

var flagNames = map[string]string{
	"Lang":     "--lang",
	"Seconds":  "--time",
	"Words":    "--words",
	"LogLevel": "--log-level",
}

// Validate checks practice settings and reports the first problem in terms of
// the CLI flag that sets it.
func Validate(cfg model.Config) error {
	err := settingsValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	name := flagNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must not be empty", name)
	case "oneof":
		return fmt.Errorf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Errorf("%s must be >= %s", name, fe.Param())
	case "max":
		return fmt.Errorf("%s must be <= %s", name, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", name)
	}
}
