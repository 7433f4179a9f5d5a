package model

// Provider describes one fuel-card acquirer integration exposed by the panel
// backend.
type Provider struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	HasPostos bool   `json:"has_postos"`
}

// Station describes one fuel station (posto) reachable through a provider.
type Station struct {
	CNPJ      string `json:"cnpj"`
	Nome      string `json:"nome"`
	NomeCurto string `json:"nome_curto"`
	SquadID   string `json:"squad_id"`
	Squad     Squad  `json:"squads"`
}

// Squad is the team a station belongs to, as nested by the upstream API.
type Squad struct {
	Nome string `json:"nome"`
}
