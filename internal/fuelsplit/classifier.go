// Package fuelsplit decides whether a transaction row moved fuel, additive
// (Arla 32) or both, and how its volume and value split between the two.
//
// Split-shape rows answer this from their explicit sub-fields. Legacy rows
// only carry a free-text descriptor, so classification falls back to keyword
// matching the way the extraction job splits line items on "arla".
package fuelsplit

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/DavidRSR1/verifica/internal/model"
)

// Kind is the fuel-type classification of a single row. A row belongs to
// exactly one kind.
type Kind int

const (
	FuelOnly Kind = iota
	AdditiveOnly
	Mixed
)

func (k Kind) String() string {
	switch k {
	case AdditiveOnly:
		return "additive_only"
	case Mixed:
		return "mixed"
	default:
		return "fuel_only"
	}
}

// Result carries the classification and the per-bucket amounts the row
// contributes to the aggregation.
type Result struct {
	Kind           Kind
	FuelVolume     decimal.Decimal
	FuelValue      decimal.Decimal
	AdditiveVolume decimal.Decimal
	AdditiveValue  decimal.Decimal
}

// additiveTerm marks Arla 32; fuelTerms cover the product names the portal
// emits for actual fuel.
var (
	additiveTerm = "arla"
	fuelTerms    = []string{"diesel", "gasolina", "etanol", "s10", "s500"}
)

// Classify determines the fuel split of a canonical row. Explicit split
// fields take precedence; the text fallback only runs for legacy rows.
// Classification is cheap and deterministic, so callers rerun it on every
// aggregation pass instead of caching it on the row.
func Classify(c model.CanonicalRow) Result {
	if c.Shape == model.ShapeSplit {
		return classifySplit(c)
	}
	return classifyLegacy(c)
}

func classifySplit(c model.CanonicalRow) Result {
	r := Result{
		FuelVolume:     c.FuelVolume,
		FuelValue:      c.FuelValue,
		AdditiveVolume: c.AdditiveVolume,
		AdditiveValue:  c.AdditiveValue,
	}
	switch {
	case c.FuelVolume.IsPositive() && c.AdditiveVolume.IsPositive():
		r.Kind = Mixed
	case c.AdditiveVolume.IsPositive():
		r.Kind = AdditiveOnly
	default:
		r.Kind = FuelOnly
	}
	return r
}

func classifyLegacy(c model.CanonicalRow) Result {
	text := strings.ToLower(c.Descriptor)
	hasAdditive := strings.Contains(text, additiveTerm)
	hasFuel := false
	for _, term := range fuelTerms {
		if strings.Contains(text, term) {
			hasFuel = true
			break
		}
	}

	switch {
	case hasAdditive && hasFuel:
		// The combined amounts cannot be split retroactively; they stay in
		// the fuel bucket and the row still flags additive presence.
		return Result{Kind: Mixed, FuelVolume: c.TotalVolume, FuelValue: c.TotalValue}
	case hasAdditive:
		return Result{Kind: AdditiveOnly, AdditiveVolume: c.TotalVolume, AdditiveValue: c.TotalValue}
	default:
		return Result{Kind: FuelOnly, FuelVolume: c.TotalVolume, FuelValue: c.TotalValue}
	}
}
