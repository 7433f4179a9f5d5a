package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Section identifies one of the two panel tables. The values match the
// upstream API path segments.
type Section string

const (
	SectionSales          Section = "vendas"
	SectionReimbursements Section = "reembolsos"
)

// Valid reports whether s names a known panel section.
func (s Section) Valid() bool {
	return s == SectionSales || s == SectionReimbursements
}

// Row is one transaction record (sale or reimbursement line) exactly as the
// upstream API returned it. Column sets differ between sections and between
// row generations, so rows stay dynamic; Normalize produces the canonical
// shape the aggregation path works on.
type Row map[string]any

// Upstream column names. Sale rows use the abastecimento columns, reimbursement
// rows the pagamento columns; both carry valor_total.
const (
	ColAuthorizationID = "id_autorizacao"
	ColSaleDate        = "data_abastecimento"
	ColSaleTime        = "hora_abastecimento"
	ColFleetName       = "nome_frota"
	ColProduct         = "produto"
	ColService         = "servico"
	ColSaleLiters      = "quantidade_litros"
	ColUnitValue       = "valor_unitario"
	ColTotalValue      = "valor_total"
	ColFuelLiters      = "litros_combustivel"
	ColFuelValue       = "valor_combustivel"
	ColAdditiveLiters  = "litros_arla"
	ColAdditiveValue   = "valor_arla"

	ColCompany       = "empresa"
	ColReimbDate     = "data"
	ColReimbLiters   = "litros"
	ColFuelName      = "combustivel"
	ColInvoiceTotal  = "reembolso_total"
	ColPaymentDate   = "data_pagamento"
	ColPaymentStatus = "status_pagamento"
)

// Value renders the column as text for comparison purposes. The second return
// is false when the column is absent, nil or an empty string; those rows sort
// to the end regardless of direction.
func (r Row) Value(column string) (string, bool) {
	v, ok := r[column]
	if !ok || v == nil {
		return "", false
	}
	s, isString := v.(string)
	if !isString {
		s = fmt.Sprint(v)
	}
	if s == "" {
		return "", false
	}
	return s, true
}

// RowShape tags the canonical row with the upstream generation it came from.
type RowShape int

const (
	// ShapeLegacy rows carry a single combined volume and value; the fuel
	// type is only inferable from the free-text descriptor.
	ShapeLegacy RowShape = iota
	// ShapeSplit rows carry explicit fuel and additive sub-amounts in
	// addition to the combined totals.
	ShapeSplit
)

// CanonicalRow is the normalized form every row is reduced to before
// classification and aggregation. Unparseable or missing numerics come out as
// zero, never as an error.
type CanonicalRow struct {
	Shape      RowShape
	Descriptor string // product, fuel and service labels joined for keyword matching

	TotalValue  decimal.Decimal
	TotalVolume decimal.Decimal

	// Split sub-amounts; meaningful only when Shape is ShapeSplit.
	FuelVolume     decimal.Decimal
	FuelValue      decimal.Decimal
	AdditiveVolume decimal.Decimal
	AdditiveValue  decimal.Decimal

	// Invoice identity for reimbursement deposit dedup.
	Company         string
	PaymentDate     string
	InvoiceTotal    decimal.Decimal
	HasInvoiceTotal bool
}

// Normalize reduces a raw upstream row to its canonical shape. A row counts as
// split when the fuel-volume sub-field is present together with at least one
// additive sub-field; everything else is legacy.
func Normalize(r Row) CanonicalRow {
	c := CanonicalRow{
		Shape:      ShapeLegacy,
		Descriptor: descriptor(r),
		TotalValue: ParseDecimal(r[ColTotalValue]),
	}

	// Sale rows carry quantidade_litros, reimbursement rows litros.
	if v, ok := r[ColSaleLiters]; ok {
		c.TotalVolume = ParseDecimal(v)
	} else {
		c.TotalVolume = ParseDecimal(r[ColReimbLiters])
	}

	_, hasFuelVol := numeric(r, ColFuelLiters)
	_, hasAddVol := numeric(r, ColAdditiveLiters)
	_, hasAddVal := numeric(r, ColAdditiveValue)
	if hasFuelVol && (hasAddVol || hasAddVal) {
		c.Shape = ShapeSplit
		c.FuelVolume = ParseDecimal(r[ColFuelLiters])
		c.FuelValue = ParseDecimal(r[ColFuelValue])
		c.AdditiveVolume = ParseDecimal(r[ColAdditiveLiters])
		c.AdditiveValue = ParseDecimal(r[ColAdditiveValue])
	}

	if company, ok := r.Value(ColCompany); ok {
		c.Company = company
	}
	if paid, ok := r.Value(ColPaymentDate); ok {
		c.PaymentDate = paid
	}
	if total, ok := numeric(r, ColInvoiceTotal); ok {
		c.InvoiceTotal = total
		c.HasInvoiceTotal = true
	}

	return c
}

// descriptor joins the free-text product, fuel and service labels. Sale rows
// name the fuel in produto, reimbursement rows in combustivel; additive items
// usually show up in servico.
func descriptor(r Row) string {
	var parts []string
	for _, col := range []string{ColProduct, ColFuelName, ColService} {
		if s, ok := r.Value(col); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func numeric(r Row, column string) (decimal.Decimal, bool) {
	s, ok := r.Value(column)
	if !ok {
		return decimal.Zero, false
	}
	return parseDecimalString(s)
}
