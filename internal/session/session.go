// Package session owns the dashboard session: which station and period are
// active, the cached rows per table, the sort state, and the generation
// counter that keeps rapid filter changes from ever rendering a stale
// response.
//
// Concurrency model: state only mutates after a fetch resumes, under the
// session mutex, and the generation check at that point is the sole guard.
// There is no cancellation of superseded fetches; they run to completion and
// their results are dropped on arrival.
package session

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/DavidRSR1/verifica/internal/aggregate"
	"github.com/DavidRSR1/verifica/internal/model"
	"github.com/DavidRSR1/verifica/internal/repository"
	"github.com/DavidRSR1/verifica/internal/sorter"
	"github.com/DavidRSR1/verifica/internal/upstream"
)

// Fetcher is the slice of the panel API client the session needs.
type Fetcher interface {
	Sales(ctx context.Context, provider string, q upstream.Query) ([]model.Row, error)
	Reimbursements(ctx context.Context, provider string, q upstream.Query, byPayment bool) ([]model.Row, error)
	Resumo(ctx context.Context, provider string, q upstream.Query) (upstream.Resumo, error)
}

// Listener receives accepted view updates. Deciding whether an update is
// accepted (the generation check) is the session's job; how to render it is
// entirely the listener's.
type Listener interface {
	ViewUpdated(View)
}

// Filters is the active (provider, station, period) tuple of a table fetch.
type Filters struct {
	Provider  string
	CNPJ      string
	DateFrom  string
	DateTo    string
	ByPayment bool // reimbursements only; opaque to aggregation
}

// SortState is the per-table sort. It persists until the user changes it.
type SortState struct {
	Column    string           `json:"column"`
	Direction sorter.Direction `json:"direction"`
}

// View is everything the rendering layer needs for one table: rows in display
// order, the table summary, the latest KPI resumo, and the error or
// no-records state when there is nothing to show. Summary is nil when the
// row set is empty so an empty table renders a no-records message instead of
// a zero-filled footer.
type View struct {
	Section   model.Section      `json:"section"`
	Rows      []model.Row        `json:"rows"`
	Summary   *aggregate.Summary `json:"resumo_tabela,omitempty"`
	Resumo    *upstream.Resumo   `json:"resumo_kpi,omitempty"`
	Sort      SortState          `json:"ordenacao"`
	NoRecords bool               `json:"sem_registros"`
	Err       string             `json:"erro,omitempty"`
	ResumoErr string             `json:"erro_resumo,omitempty"`
}

type station struct {
	provider string
	cnpj     string
}

// Session is created once at application start and lives for the whole
// process. It is the single writer of the row cache and the view states.
type Session struct {
	fetcher  Fetcher
	cache    *repository.RowCacheRepository
	listener Listener

	mu            sync.Mutex
	generation    uint64
	activeSection model.Section
	activeStation station
	sorts         map[model.Section]SortState
	views         map[model.Section]View
}

// New creates a session. listener may be nil when nothing renders pushed
// updates (the HTTP layer pulls views instead).
func New(fetcher Fetcher, cache *repository.RowCacheRepository, listener Listener) *Session {
	return &Session{
		fetcher:  fetcher,
		cache:    cache,
		listener: listener,
		sorts:    make(map[model.Section]SortState),
		views:    make(map[model.Section]View),
	}
}

func defaultSort(section model.Section) SortState {
	if section == model.SectionReimbursements {
		return SortState{Column: model.ColPaymentDate, Direction: sorter.Descending}
	}
	return SortState{Column: model.ColSaleDate, Direction: sorter.Descending}
}

// LoadTable fetches a table for the given filters and, if the response is
// still current when it arrives, replaces the section's cache and view.
// Responses superseded by a newer fetch, or arriving after the active
// section changed, are discarded silently: only the most recently initiated
// request for the active section may ever mutate visible state.
//
// The KPI resumo is fetched only after the table's round trip is accepted,
// and passes the same generation check before it is attached.
func (s *Session) LoadTable(ctx context.Context, section model.Section, f Filters) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.activeSection = section
	s.resetIfStationChanged(ctx, station{provider: f.Provider, cnpj: f.CNPJ})
	fetchID := uuid.NewString()[:8]
	s.mu.Unlock()

	log.Printf("[session] fetch %s: %s %s %s..%s (gen %d)", fetchID, section, f.CNPJ, f.DateFrom, f.DateTo, gen)

	rows, err := s.fetchRows(ctx, section, f)

	s.mu.Lock()
	if gen != s.generation || section != s.activeSection {
		s.mu.Unlock()
		log.Printf("[session] fetch %s: superseded, discarding response", fetchID)
		return
	}

	if err == nil {
		err = s.cache.Replace(ctx, section, rows)
	}
	if err != nil {
		view := View{
			Section: section,
			Rows:    []model.Row{},
			Sort:    s.sortLocked(section),
			Err:     err.Error(),
		}
		s.views[section] = view
		s.mu.Unlock()
		log.Printf("[session] fetch %s: %v", fetchID, err)
		s.notify(view)
		return
	}

	view := s.assembleLocked(section, rows)
	s.views[section] = view
	s.mu.Unlock()
	log.Printf("[session] fetch %s: accepted, %d rows", fetchID, len(rows))
	s.notify(view)

	// Strict happens-before: the resumo is requested only after the table
	// update landed, and still has to win the same staleness check.
	resumo, resumoErr := s.fetcher.Resumo(ctx, f.Provider, upstream.Query{
		CNPJ: f.CNPJ, DateFrom: f.DateFrom, DateTo: f.DateTo,
	})

	s.mu.Lock()
	if gen != s.generation || section != s.activeSection {
		s.mu.Unlock()
		log.Printf("[session] fetch %s: resumo superseded, discarding", fetchID)
		return
	}
	view = s.views[section]
	if resumoErr != nil {
		view.ResumoErr = resumoErr.Error()
	} else {
		view.Resumo = &resumo
	}
	s.views[section] = view
	s.mu.Unlock()
	s.notify(view)
}

// SetSort records the sort state of a section and re-derives its view from
// the cached rows. It never triggers a network call.
func (s *Session) SetSort(ctx context.Context, section model.Section, state SortState) (View, error) {
	s.mu.Lock()
	s.sorts[section] = state

	rows, err := s.cache.Rows(ctx, section)
	if err != nil {
		s.mu.Unlock()
		return View{}, err
	}

	view := s.assembleLocked(section, rows)
	// Sorting does not invalidate the KPI resumo already on screen.
	if prev, ok := s.views[section]; ok {
		view.Resumo = prev.Resumo
		view.ResumoErr = prev.ResumoErr
	}
	s.views[section] = view
	s.mu.Unlock()

	s.notify(view)
	return view, nil
}

// View returns the current state of a section's table.
func (s *Session) View(section model.Section) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	if view, ok := s.views[section]; ok {
		return view
	}
	return View{Section: section, Rows: []model.Row{}, Sort: s.sortLocked(section)}
}

// Reset tears down all cached rows and views, used when the operator
// switches provider or station. In-flight fetches from before the reset are
// discarded by the bumped generation.
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.activeStation = station{}
	s.resetLocked(ctx)
}

// resetIfStationChanged clears both sections when the fetch targets a
// different station than the one the session was showing. Caller holds mu.
func (s *Session) resetIfStationChanged(ctx context.Context, next station) {
	if s.activeStation == (station{}) || s.activeStation == next {
		s.activeStation = next
		return
	}
	s.activeStation = next
	s.resetLocked(ctx)
}

func (s *Session) resetLocked(ctx context.Context) {
	for _, section := range []model.Section{model.SectionSales, model.SectionReimbursements} {
		if err := s.cache.Clear(ctx, section); err != nil {
			log.Printf("[session] failed to clear %s cache: %v", section, err)
		}
		delete(s.views, section)
	}
}

func (s *Session) fetchRows(ctx context.Context, section model.Section, f Filters) ([]model.Row, error) {
	q := upstream.Query{CNPJ: f.CNPJ, DateFrom: f.DateFrom, DateTo: f.DateTo}
	if section == model.SectionReimbursements {
		return s.fetcher.Reimbursements(ctx, f.Provider, q, f.ByPayment)
	}
	return s.fetcher.Sales(ctx, f.Provider, q)
}

// assembleLocked builds a section view from a row set: rows sorted per the
// current sort state and the summary recomputed from scratch. Caller holds
// mu.
func (s *Session) assembleLocked(section model.Section, rows []model.Row) View {
	sort := s.sortLocked(section)
	view := View{
		Section: section,
		Rows:    sorter.Sort(rows, sort.Column, sort.Direction),
		Sort:    sort,
	}
	if len(rows) == 0 {
		view.NoRecords = true
		return view
	}
	summary := aggregate.Rows(rows)
	view.Summary = &summary
	return view
}

func (s *Session) sortLocked(section model.Section) SortState {
	if state, ok := s.sorts[section]; ok {
		return state
	}
	return defaultSort(section)
}

func (s *Session) notify(view View) {
	if s.listener != nil {
		s.listener.ViewUpdated(view)
	}
}
