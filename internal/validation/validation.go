// Package validation checks request parameters before they reach the session
// layer. Everything here is format-level; business authorization stays with
// the upstream API.
package validation

import (
	"fmt"
	"regexp"
	"time"

	"github.com/DavidRSR1/verifica/internal/apperrors"
	"github.com/DavidRSR1/verifica/internal/model"
)

// cnpjPattern matches the formatted CNPJ the panel uses everywhere,
// e.g. "03.951.672/0001-70".
var cnpjPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`)

// ParseSection validates a section path segment.
func ParseSection(s string) (model.Section, error) {
	section := model.Section(s)
	if !section.Valid() {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownSection, s)
	}
	return section, nil
}

// ValidateCNPJ checks that the station identifier is present and formatted.
func ValidateCNPJ(cnpj string) error {
	if cnpj == "" {
		return apperrors.ErrMissingCNPJ
	}
	if !cnpjPattern.MatchString(cnpj) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCNPJ, cnpj)
	}
	return nil
}

// ValidateDateRange checks that both dates are YYYY-MM-DD and that the range
// is not inverted. Empty dates are allowed; callers substitute defaults.
func ValidateDateRange(from, to string) error {
	var fromTime, toTime time.Time
	var err error

	if from != "" {
		if fromTime, err = time.Parse("2006-01-02", from); err != nil {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, from)
		}
	}
	if to != "" {
		if toTime, err = time.Parse("2006-01-02", to); err != nil {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, to)
		}
	}
	if from != "" && to != "" && fromTime.After(toTime) {
		return fmt.Errorf("%w: %s > %s", apperrors.ErrInvalidDateRange, from, to)
	}
	return nil
}
