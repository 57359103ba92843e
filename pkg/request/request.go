package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"careerboard/pkg/validator"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	DefaultSkip  = 0
	DefaultLimit = 100

	maxBodyBytes = 1 << 20
)

// InvalidError is a request the API refuses with 422.
type InvalidError struct {
	Violations []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid request: %v", e.Violations)
}

func invalid(format string, args ...any) *InvalidError {
	return &InvalidError{Violations: []string{fmt.Sprintf(format, args...)}}
}

// Pagination reads the skip and limit query parameters. Both must be
// non-negative integers when present.
func Pagination(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()
	if skip, err = nonNegative(q.Get("skip"), "skip", DefaultSkip); err != nil {
		return 0, 0, err
	}
	if limit, err = nonNegative(q.Get("limit"), "limit", DefaultLimit); err != nil {
		return 0, 0, err
	}
	return skip, limit, nil
}

func nonNegative(raw, name string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalid("%s: must be an integer", name)
	}
	if n < 0 {
		return 0, invalid("%s: must be greater than or equal to 0", name)
	}
	return n, nil
}

// PathID parses the {id} path value.
func PathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, invalid("id: must be a valid UUID")
	}
	return id, nil
}

// Decode validates the body against schemaID and unmarshals it into dst.
func Decode(r *http.Request, v *validator.Validator, schemaID string, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err != nil {
		return invalid("body: %v", err)
	}
	if err := v.Validate(body, schemaID); err != nil {
		var verr *validator.Error
		if errors.As(err, &verr) {
			return &InvalidError{Violations: verr.Violations}
		}
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return invalid("body: %v", err)
	}
	return nil
}
