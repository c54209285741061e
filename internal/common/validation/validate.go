package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/ledgerpilot/go-gl-recon/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = validator.New()

func init() {
	registerDecimalType()
	registerAccountID()
	registerPeriod()
}

type ErrorValidateResponse struct {
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e ErrorValidateResponse) Error() string {
	return fmt.Sprintf("field: %s, message: %s", e.Field, e.Message)
}

func ValidateStruct(toValidate interface{}) error {
	// register function to get tag name from json tags.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	var errs *multierror.Error
	if err := validate.Struct(toValidate); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			errs = multierror.Append(errs, ErrorValidateResponse{
				Message: err.Error(),
			})
			return errs.ErrorOrNil()
		}

		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			for _, valErr := range valErrs {
				key := fmt.Sprintf("%s_%s", valErr.Field(), valErr.Tag())
				if data, found := models.MapErrors[key]; found {
					errs = multierror.Append(errs, ErrorValidateResponse{
						Code:    data.Code,
						Field:   valErr.Field(),
						Message: data.ErrorMessage.Error(),
					})
				} else {
					errs = multierror.Append(errs, ErrorValidateResponse{
						Code:    "UNKNOWN",
						Field:   valErr.Namespace(),
						Message: strings.TrimSpace(fmt.Sprintf("%s %s", valErr.Tag(), valErr.Param())),
					})
				}
			}
		}
	}

	return errs.ErrorOrNil()
}

func registerDecimalType() {
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if valuer, ok := field.Interface().(models.Decimal); ok {
			return valuer.String()
		}
		return nil
	}, models.Decimal{})
}

// accountid rejects the aggregation-key separator so account|period stays
// unambiguous, and refuses whitespace-only identifiers.
func registerAccountID() {
	validate.RegisterValidation("accountid", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		if strings.TrimSpace(input) == "" {
			return false
		}
		return !strings.Contains(input, "|")
	})
}

// period accepts YYYY-MM labels; empty is allowed since single-snapshot exports
// carry no period.
func registerPeriod() {
	validate.RegisterValidation("period", func(fl validator.FieldLevel) bool {
		input := fl.Field().String()
		if input == "" {
			return true
		}
		if len(input) != 7 || input[4] != '-' {
			return false
		}
		for i, r := range input {
			if i == 4 {
				continue
			}
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
