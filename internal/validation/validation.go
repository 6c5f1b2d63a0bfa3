// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
//
// Besides the stock tags, the shared validator knows the closed
// integer enums of the API:
//
//	race_type      1 - Time attack, 2 - Drag
//	document_type  1 - Driving license, 2 - Medical certificate, 3 - Insurance
package validation

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/raceboard/backend/internal/lib/utils"
	"github.com/raceboard/backend/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// enumTags maps each custom enum tag to its valid codes and the
// human-readable listing used in error messages.
var enumTags = map[string]struct {
	codes       []int
	description string
}{
	"race_type": {
		codes:       utils.EnumCodes(model.RaceTypes()),
		description: utils.EnumToString(model.RaceTypes()),
	},
	"document_type": {
		codes:       utils.EnumCodes(model.DocumentTypes()),
		description: utils.EnumToString(model.DocumentTypes()),
	},
}

// Validator returns the process-wide validator with the enum tags registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)

		for tag, enum := range enumTags {
			codes := enum.codes
			if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return containsCode(codes, fl.Field())
			}); err != nil {
				panic(err)
			}
		}

		if err := v.RegisterValidation("max_bytes", maxBytes); err != nil {
			panic(err)
		}

		validate = v
	})
	return validate
}

// Validate runs struct tag validation on v with the shared validator.
func Validate(v any) error {
	return Validator().Struct(v)
}

// fieldName reports fields by their wire name: json first, then the query
// or path parameter name.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "query", "param"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

func containsCode(codes []int, field reflect.Value) bool {
	var code int64
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		code = field.Int()
	default:
		return false
	}

	for _, c := range codes {
		if int64(c) == code {
			return true
		}
	}
	return false
}

// maxBytes limits the byte length of a string. The stock max tag counts runes.
// bcrypt only accepts passwords up to 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		panic("max_bytes: bad parameter " + fl.Param())
	}
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= limit
}
