package usecase

import (
	"context"
	"fmt"
	"sort"

	"recruitment-console/pkg/security"
	"recruitment-console/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// validateForm runs the struct tags on form and merges the cross-field
// failures in extra. Tag failures win when both name the same field.
func validateForm(ctx context.Context, v *validator.Validate, audit *security.AuditLogger, resource string, form any, extra map[string]string) error {
	err := validation.Struct(v, form)
	formErr, isFormErr := validation.AsFormError(err)
	if err != nil && !isFormErr {
		return fmt.Errorf("validate %s: %w", resource, err)
	}
	for field, message := range extra {
		if formErr == nil {
			formErr = &validation.FormError{}
		}
		formErr.Add(field, message)
	}
	if formErr == nil {
		return nil
	}

	fields := make([]string, 0, len(formErr.Fields))
	for field := range formErr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	audit.Log(ctx, security.AuditEvent{
		Event:    security.EventValidationFailed,
		Resource: resource,
		Details:  map[string]any{"fields": fields},
	})
	return formErr
}
