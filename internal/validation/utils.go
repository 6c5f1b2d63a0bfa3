package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that calls validation.Validate(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) fills path params, query params (GET/DELETE) and the
//     body. Numeric-like strings become numbers; absent optional values
//     stay nil.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors if either step fails.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(c, err, payload)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

// bindError converts a binding failure into a 400 that names the offending
// field. Parser messages never reach the client.
func bindError(c echo.Context, err error, payload any) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		name := typeErr.Field[strings.LastIndex(typeErr.Field, ".")+1:]
		field, ok := findField(reflect.TypeOf(payload), name, "json")
		if !ok {
			field.Type = typeErr.Type
		}
		return invalidFields([]errs.FieldError{{
			Field: typeErr.Field,
			Error: typeErrorMessage(field.Type, field.Tag),
		}})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errs.NewBadRequestError("Malformed JSON body", false, nil, nil, nil)
	}

	if fieldErrors := unparsableParams(c, reflect.TypeOf(payload)); len(fieldErrors) > 0 {
		return invalidFields(fieldErrors)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
		return errs.NewBadRequestError("Unsupported content type", false, nil, nil, nil)
	}
	return errs.NewBadRequestError("Invalid request", false, nil, nil, nil)
}

func invalidFields(fieldErrors []errs.FieldError) error {
	return errs.NewBadRequestError("Validation failed", true, nil, fieldErrors, nil)
}

// unparsableParams re-checks every path and query parameter of t against
// its field type. echo reports the parser error without the parameter name.
func unparsableParams(c echo.Context, t reflect.Type) []errs.FieldError {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var fieldErrors []errs.FieldError
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			fieldErrors = append(fieldErrors, unparsableParams(c, f.Type)...)
			continue
		}

		var values []string
		name, _, _ := strings.Cut(f.Tag.Get("param"), ",")
		if name != "" {
			values = []string{c.Param(name)}
		} else if name, _, _ = strings.Cut(f.Tag.Get("query"), ","); name != "" {
			values = c.QueryParams()[name]
		} else {
			continue
		}

		for _, v := range values {
			if !parses(f.Type, v) {
				fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Error: typeErrorMessage(f.Type, f.Tag)})
				break
			}
		}
	}
	return fieldErrors
}

// parses reports whether echo's binder can store v in a field of type t.
func parses(t reflect.Type, v string) bool {
	for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	if v == "" {
		return true
	}

	var err error
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, err = strconv.ParseInt(v, 10, t.Bits())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, err = strconv.ParseUint(v, 10, t.Bits())
	case reflect.Float32, reflect.Float64:
		_, err = strconv.ParseFloat(v, t.Bits())
	case reflect.Bool:
		_, err = strconv.ParseBool(v)
	}
	return err == nil
}

// findField looks up the struct field whose tag under one of keys is name.
// Embedded structs are searched too.
func findField(t reflect.Type, name string, keys ...string) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			if found, ok := findField(f.Type, name, keys...); ok {
				return found, true
			}
			continue
		}
		for _, key := range keys {
			if tagName, _, _ := strings.Cut(f.Tag.Get(key), ","); tagName == name {
				return f, true
			}
		}
	}
	return reflect.StructField{}, false
}

// typeErrorMessage describes the value a field expects. Enum fields list
// their codes.
func typeErrorMessage(t reflect.Type, tag reflect.StructTag) string {
	for _, rule := range strings.Split(tag.Get("validate"), ",") {
		if enum, ok := enumTags[rule]; ok {
			return "must be one of: " + enum.description
		}
	}

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "has an invalid value"
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.Bool:
		return "must be true or false"
	case reflect.String:
		return "must be a string"
	case reflect.Slice, reflect.Array:
		return "must be a list"
	default:
		return "has an invalid value"
	}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, e := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: e.Field,
				Error: e.Message,
			})
		}
		return "Validation failed", fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, e := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: e.Field(),
			Error: fieldErrorMessage(e),
		})
	}

	return "Validation failed", fieldErrors
}

func fieldErrorMessage(err validator.FieldError) string {
	if enum, ok := enumTags[err.Tag()]; ok {
		return "must be one of: " + enum.description
	}

	switch err.Tag() {
	case "required":
		return "is required"

	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "len":
		return fmt.Sprintf("must be exactly %s characters", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	case "uuid", "uuid4":
		return "must be a valid UUID"

	case "numeric":
		return "must contain digits only"

	case "base64":
		return "must be base64 encoded"

	case "alphanum":
		return "must contain letters and digits only"

	case "max_bytes":
		return fmt.Sprintf("must not exceed %s bytes", err.Param())

	case "datetime":
		return fmt.Sprintf("must be a date in %s format", err.Param())

	case "gtfield":
		return fmt.Sprintf("must be after %s", err.Param())

	case "dive":
		return "some items are invalid"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
