package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DavidRSR1/verifica/internal/service"
	"github.com/DavidRSR1/verifica/internal/testutil"
)

func TestCatalogHandler_Providers(t *testing.T) {
	setupHandler := func(t *testing.T) (*CatalogHandler, *testutil.FakePanel) {
		t.Helper()
		panel := testutil.NewFakePanel()
		return NewCatalogHandler(service.NewCatalogService(panel, time.Minute)), panel
	}

	t.Run("lists available providers", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
		w := httptest.NewRecorder()

		handler.Providers(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []ProviderResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 providers, got %d", len(response))
		}
		if response[0].Slug != "profrotas" {
			t.Errorf("Expected slug 'profrotas', got '%s'", response[0].Slug)
		}
		if !response[0].HasPostos {
			t.Error("Expected profrotas to advertise stations")
		}
	})

	t.Run("returns 500 when the panel backend is unreachable", func(t *testing.T) {
		handler, panel := setupHandler(t)
		panel.Err = errors.New("connection refused")

		req := httptest.NewRequest(http.MethodGet, "/api/providers", nil)
		w := httptest.NewRecorder()

		handler.Providers(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestCatalogHandler_Stations(t *testing.T) {
	setupHandler := func(t *testing.T) *CatalogHandler {
		t.Helper()
		panel := testutil.NewFakePanel()
		return NewCatalogHandler(service.NewCatalogService(panel, time.Minute))
	}

	t.Run("lists stations of a provider", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequest(http.MethodGet, "/api/profrotas/postos",
			map[string]string{"provider": "profrotas"}, nil)
		w := httptest.NewRecorder()

		handler.Stations(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []StationResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 station, got %d", len(response))
		}
		if response[0].CNPJ != "03.951.672/0001-70" {
			t.Errorf("Unexpected CNPJ '%s'", response[0].CNPJ)
		}
		if response[0].NomeCurto != "Sof Norte" {
			t.Errorf("Unexpected short name '%s'", response[0].NomeCurto)
		}
	})

	t.Run("returns 404 for an unknown provider", func(t *testing.T) {
		handler := setupHandler(t)

		req := testutil.NewRequest(http.MethodGet, "/api/acme/postos",
			map[string]string{"provider": "acme"}, nil)
		w := httptest.NewRecorder()

		handler.Stations(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}
