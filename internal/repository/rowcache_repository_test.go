package repository

import (
	"context"
	"testing"

	"github.com/DavidRSR1/verifica/internal/model"
	"github.com/DavidRSR1/verifica/internal/testutil"
)

func TestRowCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("returns empty slice for an empty section", func(t *testing.T) {
		repo := NewRowCacheRepository(testutil.SetupTestDB(t))

		rows, err := repo.Rows(ctx, model.SectionSales)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("Expected empty slice, got %v", rows)
		}
	})

	t.Run("replace swaps rows wholesale and preserves order", func(t *testing.T) {
		repo := NewRowCacheRepository(testutil.SetupTestDB(t))

		first := []model.Row{
			{"id_autorizacao": "A-1", "valor_total": "100.00"},
			{"id_autorizacao": "A-2", "valor_total": "200.00"},
		}
		if err := repo.Replace(ctx, model.SectionSales, first); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		second := []model.Row{
			{"id_autorizacao": "B-9", "valor_total": "50.00"},
		}
		if err := repo.Replace(ctx, model.SectionSales, second); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		rows, err := repo.Rows(ctx, model.SectionSales)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected the old rows to be gone, got %d rows", len(rows))
		}
		if v, _ := rows[0].Value("id_autorizacao"); v != "B-9" {
			t.Errorf("Expected B-9, got %q", v)
		}
	})

	t.Run("sections are independent", func(t *testing.T) {
		repo := NewRowCacheRepository(testutil.SetupTestDB(t))

		if err := repo.Replace(ctx, model.SectionSales, []model.Row{{"produto": "Diesel S10"}}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if err := repo.Replace(ctx, model.SectionReimbursements, []model.Row{{"empresa": "X"}, {"empresa": "Y"}}); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		sales, _ := repo.Rows(ctx, model.SectionSales)
		reimb, _ := repo.Rows(ctx, model.SectionReimbursements)
		if len(sales) != 1 || len(reimb) != 2 {
			t.Errorf("Expected 1/2 rows, got %d/%d", len(sales), len(reimb))
		}
	})

	t.Run("clear drops one section only", func(t *testing.T) {
		repo := NewRowCacheRepository(testutil.SetupTestDB(t))

		//nolint:errcheck // seeded above pattern
		repo.Replace(ctx, model.SectionSales, []model.Row{{"produto": "Diesel S10"}})
		//nolint:errcheck
		repo.Replace(ctx, model.SectionReimbursements, []model.Row{{"empresa": "X"}})

		if err := repo.Clear(ctx, model.SectionSales); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		sales, _ := repo.Rows(ctx, model.SectionSales)
		reimb, _ := repo.Rows(ctx, model.SectionReimbursements)
		if len(sales) != 0 {
			t.Errorf("Expected sales cleared, got %d rows", len(sales))
		}
		if len(reimb) != 1 {
			t.Errorf("Expected reimbursements untouched, got %d rows", len(reimb))
		}
	})

	t.Run("preserves arbitrary row fields through the round trip", func(t *testing.T) {
		repo := NewRowCacheRepository(testutil.SetupTestDB(t))

		in := []model.Row{{
			"valor_total":     "350.00",
			"litros_arla":     "20",
			"reembolso_total": "350.00",
			"qtd_nfs":         float64(2),
		}}
		if err := repo.Replace(ctx, model.SectionReimbursements, in); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		rows, err := repo.Rows(ctx, model.SectionReimbursements)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if v, _ := rows[0].Value("litros_arla"); v != "20" {
			t.Errorf("Expected litros_arla preserved, got %q", v)
		}
		if v, _ := rows[0].Value("qtd_nfs"); v != "2" {
			t.Errorf("Expected numeric field preserved, got %q", v)
		}
	})
}
