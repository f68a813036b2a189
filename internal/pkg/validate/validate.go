// Package validate screens request payloads before they reach the employee
// service. Handlers call Struct on a decoded body and treat any error as a
// binding failure.
package validate

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct checks the validate tags on a payload such as AddEmployeeRequest or
// UpdateEmployeeRequest. The returned error names every failing field so a
// rejection can be logged in one line.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fieldErrs := make([]error, 0, len(ve))
	for _, fe := range ve {
		fieldErrs = append(fieldErrs, fmt.Errorf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.Join(fieldErrs...)
}
