package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NewValidator reports field names by their json tag so validation errors
// speak the API's vocabulary, not Go's.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// decodeValid decodes the JSON body into out and applies struct validation.
// On failure it writes the 400 response itself and reports false.
func decodeValid(w http.ResponseWriter, r *http.Request, v *validator.Validate, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := v.Struct(out); err != nil {
		writeError(w, http.StatusBadRequest, firstViolation(err))
		return false
	}
	return true
}

// firstViolation keeps the fail-fast contract: only the first failing rule
// is reported.
func firstViolation(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "invalid request"
	}
	fe := ves[0]
	switch {
	case fe.Tag() == "email":
		return fmt.Sprintf("invalid email: %s", fe.Field())
	case fe.Tag() == "required":
		return fmt.Sprintf("missing field: %s", fe.Field())
	case fe.Tag() == "min" && fe.Kind() == reflect.Slice:
		return fmt.Sprintf("missing field: %s", fe.Field())
	default:
		return fmt.Sprintf("invalid value for %s", fe.Field())
	}
}
