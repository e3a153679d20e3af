package common

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"shared-finance-go/internal/domain/apperr"
)

var (
	ErrInvalidJSON    = apperr.New(apperr.KindBadRequest, "invalid_json", "invalid json body")
	ErrInvalidRequest = apperr.New(apperr.KindBadRequest, "invalid_request", "invalid request")
	ErrUnauthorized   = apperr.New(apperr.KindUnauthorized, "invalid_token", "invalid token")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// DecodeAndValidate reads a JSON body into dst and checks its validate tags.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := decodeJSON(r, dst); err != nil {
		return ErrInvalidJSON
	}
	return Validate(dst)
}

// Validate reports the first failing field as a bad request.
func Validate(dst interface{}) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ErrInvalidRequest
	}
	return apperr.New(apperr.KindBadRequest, ErrInvalidRequest.Code, describe(fieldErrs[0]))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "uuid", "uuid4":
		return field + " must be a valid uuid"
	case "email":
		return field + " must be a valid email"
	default:
		return field + " is invalid"
	}
}
