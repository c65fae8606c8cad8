// Package service contains the entity facades used by controllers and the
// gRPC server: input validation, id assignment and defaults on top of the
// storage repositories.
package service

import (
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/servicelog/internal/errs"
)

// newID returns a fresh UUIDv4 string.
func newID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func required(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", errs.ErrValidation, field)
	}
	return nil
}

func companyOrDefault(id, def string) string {
	if id == "" {
		return def
	}
	return id
}
