package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrProviderNotFound indicates that no acquirer integration is
	// registered under the given slug.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrStationNotFound indicates that the provider has no station with the
	// given CNPJ.
	ErrStationNotFound = errors.New("station not found")

	// ErrUnknownSection indicates a table section other than vendas or
	// reembolsos.
	ErrUnknownSection = errors.New("unknown panel section")
)

// Business logic errors represent validation failures or constraint
// violations.
var (
	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidDate indicates a date that is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date format")

	// ErrInvalidCNPJ indicates a station identifier that is not a formatted
	// CNPJ.
	ErrInvalidCNPJ = errors.New("invalid CNPJ format")

	// ErrMissingCNPJ indicates that the required cnpj parameter is absent.
	ErrMissingCNPJ = errors.New("cnpj parameter is required")

	// ErrMissingSortColumn indicates a sort request without a column.
	ErrMissingSortColumn = errors.New("sort column is required")
)

// Operation failure errors represent upstream or system-level failures when
// retrieving data. Stale-response discards are deliberately not errors and
// have no entry here.
var (
	ErrFailedToRetrieveProviders = errors.New("failed to retrieve providers")
	ErrFailedToRetrieveStations  = errors.New("failed to retrieve stations")
	ErrFailedToLoadTable         = errors.New("failed to load table")
	ErrFailedToSortTable         = errors.New("failed to sort table")
)
