package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateConfigStruct, Config{})
	return v
}

// Validate checks struct tags and cross-field rules. Call ApplyDefaults
// first; an empty Config is not valid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return formatValidationErrors(verrs)
		}
		return err
	}
	return nil
}

// validateConfigStruct rejects a metrics port equal to the server port.
func validateConfigStruct(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)

	if cfg.Metrics.Enabled && cfg.Metrics.Port == cfg.Server.Port {
		sl.ReportError(cfg.Metrics.Port, "Metrics.Port", "Port", "nefield_server_port", "")
	}
}

// formatValidationErrors turns validator output into one readable error,
// keeping the failed tag name so callers can match on it.
func formatValidationErrors(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s=%s' (value: %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s' (value: %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
