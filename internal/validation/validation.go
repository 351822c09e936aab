// Package validation runs the `binding` rules of request structs and turns
// failures into a field -> messages map wrapped in an apperrors validation
// error. Field names are the json names, nested with dots and indexes
// (book.id, authors[0].id).
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/catalog/internal/apperrors"
)

var setupOnce sync.Once

// Setup makes the shared gin validator report json field names.
// Safe to call more than once.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
	})
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// Bind decodes the JSON body of the request into obj and validates it.
func Bind(c *gin.Context, obj any) error {
	Setup()
	if err := c.ShouldBindJSON(obj); err != nil {
		return translate(err, obj)
	}
	return nil
}

// translate converts binding and decoding errors into a validation error.
func translate(err error, obj any) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string][]string, len(verrs))
		for _, fe := range verrs {
			key := fieldKey(fe.Namespace())
			fields[key] = append(fields[key], message(key, fe))
		}
		return apperrors.Validation(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.FieldError(typeErr.Field, fmt.Sprintf("The %s field has an invalid type.", displayName(typeErr.Field)))
	}

	// The decoder does not name the field of a bad timestamp
	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		if key, ok := timeField(obj); ok {
			return apperrors.FieldError(key, fmt.Sprintf("The %s is not a valid RFC3339 date.", displayName(key)))
		}
	}

	return apperrors.FieldError("body", "The request body must be a valid JSON object.")
}

var timeType = reflect.TypeOf(time.Time{})

// timeField returns the json name of the only time field of obj.
func timeField(obj any) (string, bool) {
	t := reflect.TypeOf(obj)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return "", false
	}

	var found []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft == timeType {
			found = append(found, jsonFieldName(field))
		}
	}
	if len(found) != 1 {
		return "", false
	}
	return found[0], true
}

// fieldKey drops the root struct name from a validator namespace.
func fieldKey(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func displayName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func message(key string, fe validator.FieldError) string {
	name := displayName(key)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", name)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", name)
	case "eqfield":
		return fmt.Sprintf("The %s does not match.", name)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s must have at least %s items.", name, fe.Param())
		}
		return fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("The %s may not have more than %s items.", name, fe.Param())
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", name, fe.Param())
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", name, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", name)
	}
}
