package orders

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("order not found")

// ValidationError carries the first failing rule of an order submission.
// It maps to HTTP 400 at the boundary; everything else maps to 500.
type ValidationError struct {
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Rule
	}
	return fmt.Sprintf("%s: %s", e.Rule, e.Detail)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
