// Package validation checks configuration structs with go-playground/validator
// and reports failures as errors.AppError values.
//
//	if err := validation.Validate(&cfg); err != nil {
//	    appErr, _ := errors.AsAppError(err)
//	    fields := appErr.Details["fields"].([]validation.FieldError)
//	}
package validation
