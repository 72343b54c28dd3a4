package lib

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var goValidator = validator.New()

// ValidationErrors represents multiple validation errors.
type ValidationErrors struct {
	Errors []string `json:"errors"`
	// Fields that failed the "required" tag, by their env name when present.
	Missing []string `json:"missing"`
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
				out.Errors = append(out.Errors, fmt.Sprintf("%s %s", e.Field(), e.ActualTag()))
				if e.ActualTag() == "required" {
					out.Missing = append(out.Missing, e.Field())
				}
			}
			return out
		}
		return err
	}
	return nil
}

func init() {
	// Report fields by their env variable name so errors match what users set.
	goValidator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("env"), ",", 2)[0]
		if name == "" {
			return field.Name
		}
		return name
	})
}
