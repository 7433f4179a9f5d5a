package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DavidRSR1/verifica/internal/service"
)

// CatalogHandler serves the provider and station catalogs that populate the
// dashboard's selection dropdowns.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// ProviderResponse represents one acquirer integration in the catalog
type ProviderResponse struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	HasPostos bool   `json:"has_postos"`
}

// Providers lists the available acquirer integrations.
//
// Endpoint: GET /api/providers
func (h *CatalogHandler) Providers(w http.ResponseWriter, r *http.Request) {
	providers, err := h.catalogService.Providers(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	response := make([]ProviderResponse, len(providers))
	for i, p := range providers {
		response[i] = ProviderResponse{
			Slug:      p.Slug,
			Name:      p.Name,
			Icon:      p.Icon,
			Color:     p.Color,
			HasPostos: p.HasPostos,
		}
	}
	respondJSON(w, http.StatusOK, response)
}

// StationResponse represents one station of a provider
type StationResponse struct {
	CNPJ      string `json:"cnpj"`
	Nome      string `json:"nome"`
	NomeCurto string `json:"nome_curto,omitempty"`
	Squad     string `json:"squad,omitempty"`
}

// Stations lists the stations of a provider.
//
// Endpoint: GET /api/{provider}/postos
func (h *CatalogHandler) Stations(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	stations, err := h.catalogService.Stations(r.Context(), provider)
	if err != nil {
		respondError(w, err)
		return
	}

	response := make([]StationResponse, len(stations))
	for i, s := range stations {
		response[i] = StationResponse{
			CNPJ:      s.CNPJ,
			Nome:      s.Nome,
			NomeCurto: s.NomeCurto,
			Squad:     s.Squad.Nome,
		}
	}
	respondJSON(w, http.StatusOK, response)
}
