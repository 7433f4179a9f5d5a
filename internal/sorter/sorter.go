// Package sorter orders panel rows for display. Sorting is pure: the input
// slice is never mutated and equal keys keep their relative order.
package sorter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/DavidRSR1/verifica/internal/model"
)

// Direction of a column sort.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps the wire value to a Direction, defaulting to ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Descending)) {
		return Descending
	}
	return Ascending
}

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Descending {
		return Ascending
	}
	return Descending
}

// Sort returns a new slice ordered by the given column. Rows whose column is
// missing or empty sort to the end in both directions; that rule is absolute,
// not direction-relative. Each pairwise comparison decides independently
// whether to compare numerically or as case-insensitive text, so columns with
// mixed content behave sensibly instead of assuming one global column type.
func Sort(rows []model.Row, column string, dir Direction) []model.Row {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b model.Row) int {
		return compare(a, b, column, dir)
	})
	return sorted
}

func compare(a, b model.Row, column string, dir Direction) int {
	av, aok := a.Value(column)
	bv, bok := b.Value(column)

	// Missing values always lose, regardless of direction.
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1
	case !bok:
		return -1
	}

	var c int
	an, aNum := model.ParseNumber(av)
	bn, bNum := model.ParseNumber(bv)
	if aNum && bNum {
		c = cmp.Compare(an, bn)
	} else {
		c = strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	}

	if dir == Descending {
		c = -c
	}
	return c
}
