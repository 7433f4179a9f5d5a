package fuelsplit

import (
	"testing"

	"github.com/DavidRSR1/verifica/internal/model"
)

func TestClassify(t *testing.T) {
	t.Run("split fields beat the descriptor", func(t *testing.T) {
		// No recognizable keyword anywhere, explicit volumes decide.
		r := Classify(model.Normalize(model.Row{
			"produto":            "Produto 77",
			"litros_combustivel": "100",
			"valor_combustivel":  "300.00",
			"litros_arla":        "20",
			"valor_arla":         "50.00",
		}))

		if r.Kind != Mixed {
			t.Fatalf("Expected mixed, got %s", r.Kind)
		}
		if r.FuelValue.StringFixed(2) != "300.00" || r.AdditiveValue.StringFixed(2) != "50.00" {
			t.Errorf("Unexpected split values: fuel=%s additive=%s", r.FuelValue, r.AdditiveValue)
		}
	})

	t.Run("split row with zero fuel volume is additive only", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{
			"litros_combustivel": "0",
			"litros_arla":        "20",
			"valor_arla":         "50.00",
		}))

		if r.Kind != AdditiveOnly {
			t.Errorf("Expected additive_only, got %s", r.Kind)
		}
	})

	t.Run("split row with zero additive volume is fuel only", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{
			"litros_combustivel": "100",
			"valor_combustivel":  "300.00",
			"litros_arla":        "0",
			"valor_arla":         "0",
		}))

		if r.Kind != FuelOnly {
			t.Errorf("Expected fuel_only, got %s", r.Kind)
		}
	})

	t.Run("legacy diesel row is fuel only", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{
			"produto":           "Diesel S10",
			"quantidade_litros": "100",
			"valor_total":       "550.00",
		}))

		if r.Kind != FuelOnly {
			t.Fatalf("Expected fuel_only, got %s", r.Kind)
		}
		if r.FuelVolume.StringFixed(0) != "100" || r.FuelValue.StringFixed(2) != "550.00" {
			t.Errorf("Expected combined totals in the fuel bucket, got %s / %s", r.FuelVolume, r.FuelValue)
		}
	})

	t.Run("legacy arla row is additive only", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{
			"combustivel": "Arla 32",
			"litros":      "20",
			"valor_total": "50.00",
		}))

		if r.Kind != AdditiveOnly {
			t.Fatalf("Expected additive_only, got %s", r.Kind)
		}
		if r.AdditiveValue.StringFixed(2) != "50.00" {
			t.Errorf("Expected combined value in the additive bucket, got %s", r.AdditiveValue)
		}
	})

	t.Run("legacy row naming fuel and arla is mixed", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{
			"produto":           "Diesel S10",
			"servico":           "Arla 32",
			"quantidade_litros": "120",
			"valor_total":       "700.00",
		}))

		if r.Kind != Mixed {
			t.Fatalf("Expected mixed, got %s", r.Kind)
		}
		// Legacy mixed rows cannot be split; totals stay in the fuel bucket.
		if !r.AdditiveVolume.IsZero() || r.FuelVolume.StringFixed(0) != "120" {
			t.Errorf("Unexpected buckets: fuel=%s additive=%s", r.FuelVolume, r.AdditiveVolume)
		}
	})

	t.Run("keyword match is case insensitive", func(t *testing.T) {
		r := Classify(model.Normalize(model.Row{"produto": "ARLA 32 GRANEL"}))
		if r.Kind != AdditiveOnly {
			t.Errorf("Expected additive_only, got %s", r.Kind)
		}
	})
}
