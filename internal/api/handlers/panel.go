package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DavidRSR1/verifica/internal/apperrors"
	"github.com/DavidRSR1/verifica/internal/model"
	"github.com/DavidRSR1/verifica/internal/service"
	"github.com/DavidRSR1/verifica/internal/session"
	"github.com/DavidRSR1/verifica/internal/sorter"
	"github.com/DavidRSR1/verifica/internal/validation"
)

const dateLayout = "2006-01-02"

// Default lookback windows applied when the request carries no period.
const (
	salesWindow          = 7 * 24 * time.Hour
	reimbursementsWindow = 30 * 24 * time.Hour
)

// PanelHandler serves the dashboard tables: loading a section for a filter
// tuple and re-sorting it from the session cache.
type PanelHandler struct {
	sess           *session.Session
	catalogService *service.CatalogService
	now            func() time.Time
}

// NewPanelHandler creates a new PanelHandler
func NewPanelHandler(sess *session.Session, catalogService *service.CatalogService) *PanelHandler {
	return &PanelHandler{
		sess:           sess,
		catalogService: catalogService,
		now:            time.Now,
	}
}

// Table loads a section's table for the given filters and returns the
// resulting view. Upstream fetch failures are part of the view body, not an
// HTTP error: the dashboard renders them in place of the table.
//
// Endpoint: GET /api/panel/{section}?provider=&cnpj=&data_ini=&data_fim=&by_pagamento=
func (h *PanelHandler) Table(w http.ResponseWriter, r *http.Request) {
	section, err := validation.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		respondError(w, err)
		return
	}

	q := r.URL.Query()

	provider := q.Get("provider")
	if _, err := h.catalogService.Provider(r.Context(), provider); err != nil {
		respondError(w, err)
		return
	}

	cnpj := q.Get("cnpj")
	if err := validation.ValidateCNPJ(cnpj); err != nil {
		respondError(w, err)
		return
	}

	from, to := q.Get("data_ini"), q.Get("data_fim")
	if err := validation.ValidateDateRange(from, to); err != nil {
		respondError(w, err)
		return
	}
	from, to = h.defaultWindow(section, from, to)

	h.sess.LoadTable(r.Context(), section, session.Filters{
		Provider:  provider,
		CNPJ:      cnpj,
		DateFrom:  from,
		DateTo:    to,
		ByPayment: q.Get("by_pagamento") != "0",
	})

	respondJSON(w, http.StatusOK, h.sess.View(section))
}

// Sort re-sorts a section's cached rows and returns the updated view. When
// no direction is given, clicking the current sort column toggles it and any
// other column starts ascending.
//
// Endpoint: POST /api/panel/{section}/sort?column=&dir=
func (h *PanelHandler) Sort(w http.ResponseWriter, r *http.Request) {
	section, err := validation.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		respondError(w, err)
		return
	}

	q := r.URL.Query()
	column := q.Get("column")
	if column == "" {
		respondError(w, apperrors.ErrMissingSortColumn)
		return
	}

	var dir sorter.Direction
	if dirParam := q.Get("dir"); dirParam != "" {
		dir = sorter.ParseDirection(dirParam)
	} else {
		current := h.sess.View(section).Sort
		if current.Column == column {
			dir = current.Direction.Toggle()
		} else {
			dir = sorter.Ascending
		}
	}

	view, err := h.sess.SetSort(r.Context(), section, session.SortState{Column: column, Direction: dir})
	if err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrFailedToSortTable, err))
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// defaultWindow fills missing period bounds: the end defaults to today and
// the start to the section's lookback before the end.
func (h *PanelHandler) defaultWindow(section model.Section, from, to string) (string, string) {
	if to == "" {
		to = h.now().Format(dateLayout)
	}
	if from == "" {
		window := salesWindow
		if section == model.SectionReimbursements {
			window = reimbursementsWindow
		}
		end, err := time.Parse(dateLayout, to)
		if err != nil {
			end = h.now()
		}
		from = end.Add(-window).Format(dateLayout)
	}
	return from, to
}
