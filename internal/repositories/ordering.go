package repositories

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOrdering is returned when a caller requests ordering by a field
// outside the resource's whitelist.
var ErrInvalidOrdering = errors.New("invalid ordering field")

// orderClause resolves a requested ordering ("field" or "-field") against a
// whitelist of column names, falling back to the resource default when empty.
func orderClause(requested string, allowed map[string]string, fallback string) (string, error) {
	if requested == "" {
		return fallback, nil
	}
	direction := "ASC"
	field := requested
	if strings.HasPrefix(requested, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(requested, "-")
	}
	column, ok := allowed[field]
	if !ok {
		return "", fmt.Errorf("ordering %q: %w", requested, ErrInvalidOrdering)
	}
	return column + " " + direction, nil
}
