package barter

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultRadius is the number of neighbours shown on each side when none is given.
const DefaultRadius = 3

// Neighbor is one entry of a proximity window.
type Neighbor struct {
	Name     string
	Value    int64
	IsTarget bool
}

// Window is a slice of the value-ordered table centred on a queried item.
type Window []Neighbor

// Target returns the anchor entry of the window.
func (w Window) Target() (Neighbor, bool) {
	for _, n := range w {
		if n.IsTarget {
			return n, true
		}
	}
	return Neighbor{}, false
}

// SortedByValue returns every table entry ordered by ascending value.
// Entries with equal values are ordered by name.
func SortedByValue(table Table) []Neighbor {
	entries := make([]Neighbor, 0, len(table))
	for name, value := range table {
		entries = append(entries, Neighbor{Name: name, Value: value})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// FindNear returns the entries within radius positions of itemName in the
// value ordering, the item itself included.
func FindNear(table Table, itemName string, radius int) (Window, error) {
	if table == nil {
		return nil, ErrNoTable
	}
	if radius < 0 {
		return nil, &FormatError{Kind: InvalidRange, Input: strconv.Itoa(radius)}
	}

	target := Normalize(itemName)
	if _, ok := table[target]; !ok {
		return nil, &LookupError{Name: target}
	}

	ordered := SortedByValue(table)
	anchor := -1
	for i, entry := range ordered {
		if entry.Name == target {
			anchor = i
			break
		}
	}

	radius = min(radius, len(ordered))
	lo := max(anchor-radius, 0)
	hi := min(anchor+radius, len(ordered)-1)

	window := make(Window, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		entry := ordered[i]
		entry.IsTarget = i == anchor
		window = append(window, entry)
	}
	return window, nil
}

// ParseRadius reads a user-supplied radius. Blank input means DefaultRadius.
func ParseRadius(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultRadius, nil
	}
	if !isDigits(trimmed) {
		return 0, &FormatError{Kind: InvalidRange, Input: raw}
	}
	radius, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &FormatError{Kind: InvalidRange, Input: raw}
	}
	return radius, nil
}
