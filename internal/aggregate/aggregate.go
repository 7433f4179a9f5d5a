// Package aggregate computes the financial summary of a panel table: straight
// item sums, per-fuel-type buckets and the deduplicated invoice-level deposit
// total for reimbursements.
package aggregate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/DavidRSR1/verifica/internal/fuelsplit"
	"github.com/DavidRSR1/verifica/internal/model"
)

// Summary is the aggregate of one table. TotalValue sums the item-level
// amounts as listed ("Soma dos Itens") and may double count items that share
// an invoice; DepositTotal counts each distinct invoice exactly once and is
// the money that actually moved. The two are expected to differ and both are
// exposed.
type Summary struct {
	Count          int             `json:"qtd_registros"`
	TotalValue     decimal.Decimal `json:"soma_itens"`
	TotalVolume    decimal.Decimal `json:"litros_totais"`
	FuelVolume     decimal.Decimal `json:"litros_combustivel"`
	FuelValue      decimal.Decimal `json:"valor_combustivel"`
	AdditiveVolume decimal.Decimal `json:"litros_arla"`
	AdditiveValue  decimal.Decimal `json:"valor_arla"`
	HasAdditive    bool            `json:"tem_arla"`
	DepositTotal   decimal.Decimal `json:"total_depositos"`
}

// Rows aggregates a full row set. Malformed or missing numerics contribute
// zero; they never exclude a row from the count. An empty input yields the
// zero Summary, which callers render as an explicit no-records state rather
// than a zero-filled footer.
//
// The result is invariant under reordering of the input.
func Rows(rows []model.Row) Summary {
	s := Summary{
		Count:          len(rows),
		TotalValue:     decimal.Zero,
		TotalVolume:    decimal.Zero,
		FuelVolume:     decimal.Zero,
		FuelValue:      decimal.Zero,
		AdditiveVolume: decimal.Zero,
		AdditiveValue:  decimal.Zero,
		DepositTotal:   decimal.Zero,
	}

	seenInvoices := make(map[string]struct{})

	for _, row := range rows {
		c := model.Normalize(row)

		s.TotalValue = s.TotalValue.Add(c.TotalValue)
		s.TotalVolume = s.TotalVolume.Add(c.TotalVolume)

		r := fuelsplit.Classify(c)
		s.FuelVolume = s.FuelVolume.Add(r.FuelVolume)
		s.FuelValue = s.FuelValue.Add(r.FuelValue)
		s.AdditiveVolume = s.AdditiveVolume.Add(r.AdditiveVolume)
		s.AdditiveValue = s.AdditiveValue.Add(r.AdditiveValue)
		if r.Kind == fuelsplit.AdditiveOnly || r.Kind == fuelsplit.Mixed {
			s.HasAdditive = true
		}

		// Rows without an invoice total (all sale rows, and reimbursement
		// rows that predate the invoice linkage) contribute nothing here.
		if c.HasInvoiceTotal {
			key := invoiceKey(c)
			if _, seen := seenInvoices[key]; !seen {
				seenInvoices[key] = struct{}{}
				s.DepositTotal = s.DepositTotal.Add(c.InvoiceTotal)
			}
		}
	}

	return s
}

// invoiceKey is the derived deduplication identity of a reimbursement
// invoice: one invoice commonly backs several item rows.
func invoiceKey(c model.CanonicalRow) string {
	return fmt.Sprintf("%s|%s|%s", c.Company, c.PaymentDate, c.InvoiceTotal.String())
}
