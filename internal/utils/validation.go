package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrTypeBodyTooLarge marks a body cut off by http.MaxBytesReader.
const ErrTypeBodyTooLarge = "value_error.body_too_large"

// timeType is what datetime fields report in their UnmarshalTypeError.
var timeType = reflect.TypeOf(time.Time{})

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeAndValidate reads a JSON body into dst and runs its validate tags.
// The returned slice is empty when the body is acceptable.
func DecodeAndValidate(body io.Reader, dst interface{}) []ValidationError {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return []ValidationError{decodeError(err)}
	}
	// the body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return []ValidationError{decodeError(err)}
		}
		return []ValidationError{malformedBody()}
	}

	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []ValidationError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}}
	}

	out := make([]ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fieldError(fe))
	}
	return out
}

func decodeError(err error) ValidationError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		return ValidationError{
			Loc:  []string{"body"},
			Msg:  fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit),
			Type: ErrTypeBodyTooLarge,
		}
	case errors.As(err, &typeErr) && typeErr.Type == timeType:
		return ValidationError{
			Loc:  fieldLoc(typeErr.Field),
			Msg:  "invalid datetime format",
			Type: "value_error.datetime",
		}
	case errors.As(err, &typeErr):
		return ValidationError{
			Loc:  fieldLoc(typeErr.Field),
			Msg:  fmt.Sprintf("value is not a valid %s", typeErr.Type.Kind()),
			Type: "type_error." + typeErr.Type.Kind().String(),
		}
	case errors.As(err, &syntaxErr), errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return malformedBody()
	default:
		return ValidationError{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}
	}
}

func malformedBody() ValidationError {
	return ValidationError{Loc: []string{"body"}, Msg: "malformed JSON body", Type: "value_error.jsondecode"}
}

func fieldLoc(field string) []string {
	if field == "" {
		return []string{"body"}
	}
	return []string{"body", field}
}

func fieldError(fe validator.FieldError) ValidationError {
	loc := []string{"body", fe.Field()}

	switch fe.Tag() {
	case "required":
		return ValidationError{Loc: loc, Msg: "field required", Type: "value_error.missing"}
	case "max":
		return ValidationError{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value has at most %s characters", fe.Param()),
			Type: "value_error.any_str.max_length",
		}
	case "gte":
		return ValidationError{
			Loc:  loc,
			Msg:  fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param()),
			Type: "value_error.number.not_ge",
		}
	default:
		return ValidationError{Loc: loc, Msg: fmt.Sprintf("failed %s validation", fe.Tag()), Type: "value_error"}
	}
}
