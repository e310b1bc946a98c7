// Package decode reads and validates JSON request bodies.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidBody indicates the request body could not be decoded or failed validation.
var ErrInvalidBody = errors.New("invalid request body")

// Validator is the shared struct validator. It is safe for concurrent use
// and caches struct metadata. Field errors report json field names.
var Validator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// JSON decodes the request body into T and validates it using `validate`
// struct tags. Unknown fields are rejected.
func JSON[T any](r *http.Request) (T, error) {
	var v T

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("%w: empty body", ErrInvalidBody)
		}
		return v, fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	if err := Struct(v); err != nil {
		return v, err
	}
	return v, nil
}

// Struct validates v, flattening validator field errors into a single message.
func Struct(v any) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidBody, strings.Join(msgs, ", "))
}
