// Package validation declares per-entity field constraints and turns
// violations into human-readable, field-prefixed issue messages. It is
// pure: no side effects, no storage access.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report issues under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterStructValidation(reviewTargetValidation, ReviewInput{})

	return v
}

// reviewTargetValidation enforces the exactly-one-target invariant.
func reviewTargetValidation(sl validator.StructLevel) {
	input := sl.Current().Interface().(ReviewInput)
	if (input.ProviderID == "") == (input.FacilityID == "") {
		sl.ReportError(input.ProviderID, "target", "ProviderID", "onetarget", "")
	}
}

// Validate checks input against its declared constraints and returns one
// issue per violation, each prefixed by the offending field name. A nil
// return means the input is valid.
func Validate(input interface{}) []string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"input: could not be validated"}
	}

	issues := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return issues
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "onetarget":
		return "exactly one of provider_id or facility_id is required"
	default:
		return fmt.Sprintf("is invalid (%s)", fe.Tag())
	}
}

// NormalizeList trims entries, drops empties, and guarantees a non-nil
// slice so multi-valued fields default to an empty ordered list.
func NormalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
