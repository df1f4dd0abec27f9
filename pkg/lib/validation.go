package lib

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joeshaw/envdecode"
)

var goValidator = validator.New()

// ValidationErrors represents multiple validation errors.
type ValidationErrors struct {
	Errors []string `json:"errors"`
}

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}

	return strings.Join(ve.Errors, "; ")
}

// ValidateStruct validates a struct using go-playground/validator.
// When validation passes, it returns nil.
func ValidateStruct(s any) error {
	if err := goValidator.Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			out := ValidationErrors{}
			for _, e := range ve {
				if e.Param() != "" {
					out.Errors = append(out.Errors, fmt.Sprintf("%s failed %s=%s", e.Namespace(), e.ActualTag(), e.Param()))
					continue
				}
				out.Errors = append(out.Errors, fmt.Sprintf("%s failed %s", e.Namespace(), e.ActualTag()))
			}
			return out
		}
		return err
	}
	return nil
}

// DecodeEnv populates target from the process environment and validates it.
// Every failure is reported as a ConfigurationError.
func DecodeEnv(target any) error {
	// Strict so that a present but malformed number is an error rather than a silent zero.
	if err := envdecode.StrictDecode(target); err != nil {
		return AsConfigurationError(fmt.Errorf("decode environment: %w", err))
	}

	if err := ValidateStruct(target); err != nil {
		return &ConfigurationError{Err: fmt.Errorf("validate: %w", err)}
	}

	return nil
}
