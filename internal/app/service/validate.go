package service

import (
	"errors"
	"reflect"
	"strings"

	"careconnect/internal/common"

	"github.com/go-playground/validator/v10"
)

// maxPasswordBytes is the longest input bcrypt will hash.
const maxPasswordBytes = 72

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "max" counts runes; bcrypt limits bytes.
	v.RegisterValidation("bcrypt_len", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
	// Report fields by their json names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs struct tag validation and reports every failing field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.ValidationError("%v", err)
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return common.ValidationError("missing or invalid fields: %s", strings.Join(names, ", "))
}
