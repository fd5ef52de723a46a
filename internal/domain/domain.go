// Package domain holds the typed records exchanged with the upstream REST
// backend and the models of the local store.
//
// Upstream payloads are decoded into these types and validated once at the
// API boundary; anything that fails Validate never reaches a screen.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid record")

func invalid(entity, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalid, entity, fmt.Sprintf(format, args...))
}

// Validator is implemented by every upstream record.
type Validator interface {
	Validate() error
}

// ID is an upstream identifier. The backend emits both numeric and string
// identifiers depending on the resource; both decode into the same form.
type ID string

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return strings.TrimSpace(string(id)) == "" }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	// 1000, 1e3 and 1000.0 are the same id.
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		*id = ID(strconv.FormatInt(int64(f), 10))
		return nil
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// ValidateAll validates each element and reports the first failure with its
// position.
func ValidateAll[T Validator](items []T) error {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
