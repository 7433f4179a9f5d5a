package upstream

import "net/url"

// Query is the station/period filter shared by the table and summary
// endpoints. Dates are YYYY-MM-DD, inclusive on both ends.
type Query struct {
	CNPJ     string
	DateFrom string
	DateTo   string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("cnpj", q.CNPJ)
	if q.DateFrom != "" {
		v.Set("data_ini", q.DateFrom)
	}
	if q.DateTo != "" {
		v.Set("data_fim", q.DateTo)
	}
	return v
}

// Resumo is the KPI summary the upstream computes for a station and period.
// The panel displays these numbers as-is; no arithmetic happens on them here.
type Resumo struct {
	TotalVendas    float64 `json:"total_vendas"`
	QtdVendas      int     `json:"qtd_vendas"`
	TotalLitros    float64 `json:"total_litros"`
	TotalReembolso float64 `json:"total_reembolso"`
	QtdReembolsos  int     `json:"qtd_reembolsos"`
}
