package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks struct tags and reports the first failing field as a BAD_REQUEST.
func Validate(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		appErr := BadRequest(fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		appErr.Err = err
		return appErr
	}
	return BadRequest(err.Error())
}
